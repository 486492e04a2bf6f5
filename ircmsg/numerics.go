package ircmsg

// Numeric replies sent by the servers this harness is pointed at.
const (
	RplWelcome           = "001"
	RplYourHost          = "002"
	RplCreated           = "003"
	RplMyInfo            = "004"
	RplChannelModeIs     = "324"
	RplNoTopic           = "331"
	RplTopic             = "332"
	RplInviting          = "341"
	RplNamReply          = "353"
	RplEndOfNames        = "366"
	ErrNoSuchNick        = "401"
	ErrNoSuchChannel     = "403"
	ErrCannotSendToChan  = "404"
	ErrNoRecipient       = "411"
	ErrNoTextToSend      = "412"
	ErrUnknownCommand    = "421"
	ErrNoNicknameGiven   = "431"
	ErrErroneusNickname  = "432"
	ErrNicknameInUse     = "433"
	ErrUserNotInChannel  = "441"
	ErrNotOnChannel      = "442"
	ErrUserOnChannel     = "443"
	ErrNotRegistered     = "451"
	ErrNeedMoreParams    = "461"
	ErrAlreadyRegistered = "462"
	ErrPasswdMismatch    = "464"
	ErrChannelIsFull     = "471"
	ErrUnknownMode       = "472"
	ErrInviteOnlyChan    = "473"
	ErrBadChannelKey     = "475"
	ErrChanOPrivsNeeded  = "482"
	ErrUModeUnknownFlag  = "501"
	ErrUsersDontMatch    = "502"
)

var numericNames = map[string]string{
	RplWelcome:           "RPL_WELCOME",
	RplYourHost:          "RPL_YOURHOST",
	RplCreated:           "RPL_CREATED",
	RplMyInfo:            "RPL_MYINFO",
	RplChannelModeIs:     "RPL_CHANNELMODEIS",
	RplNoTopic:           "RPL_NOTOPIC",
	RplTopic:             "RPL_TOPIC",
	RplInviting:          "RPL_INVITING",
	RplNamReply:          "RPL_NAMREPLY",
	RplEndOfNames:        "RPL_ENDOFNAMES",
	ErrNoSuchNick:        "ERR_NOSUCHNICK",
	ErrNoSuchChannel:     "ERR_NOSUCHCHANNEL",
	ErrCannotSendToChan:  "ERR_CANNOTSENDTOCHAN",
	ErrNoRecipient:       "ERR_NORECIPIENT",
	ErrNoTextToSend:      "ERR_NOTEXTTOSEND",
	ErrUnknownCommand:    "ERR_UNKNOWNCOMMAND",
	ErrNoNicknameGiven:   "ERR_NONICKNAMEGIVEN",
	ErrErroneusNickname:  "ERR_ERRONEUSNICKNAME",
	ErrNicknameInUse:     "ERR_NICKNAMEINUSE",
	ErrUserNotInChannel:  "ERR_USERNOTINCHANNEL",
	ErrNotOnChannel:      "ERR_NOTONCHANNEL",
	ErrUserOnChannel:     "ERR_USERONCHANNEL",
	ErrNotRegistered:     "ERR_NOTREGISTERED",
	ErrNeedMoreParams:    "ERR_NEEDMOREPARAMS",
	ErrAlreadyRegistered: "ERR_ALREADYREGISTRED",
	ErrPasswdMismatch:    "ERR_PASSWDMISMATCH",
	ErrChannelIsFull:     "ERR_CHANNELISFULL",
	ErrUnknownMode:       "ERR_UNKNOWNMODE",
	ErrInviteOnlyChan:    "ERR_INVITEONLYCHAN",
	ErrBadChannelKey:     "ERR_BADCHANNELKEY",
	ErrChanOPrivsNeeded:  "ERR_CHANOPRIVSNEEDED",
	ErrUModeUnknownFlag:  "ERR_UMODEUNKNOWNFLAG",
	ErrUsersDontMatch:    "ERR_USERSDONTMATCH",
}

// IsNumeric reports whether command is a three-digit numeric reply.
func IsNumeric(command string) bool {
	if len(command) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if command[i] < '0' || command[i] > '9' {
			return false
		}
	}
	return true
}

// NumericName returns the symbolic name of a numeric reply, such as "ERR_NEEDMOREPARAMS"
// for "461".
func NumericName(command string) (string, bool) {
	name, ok := numericNames[command]
	return name, ok
}

// IsError reports whether command is a numeric in the error range (400-599).
func IsError(command string) bool {
	return IsNumeric(command) && command[0] >= '4' && command[0] <= '5'
}
