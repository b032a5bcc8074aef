package command

// User-facing texts.
const (
	MsgNotLoggedIn        = "Not logged in"
	MsgCommandNotFound    = `Command not found please using "help"`
	MsgInvalidCredentials = "Invalid username or password"
	MsgLoggedOut          = "User logged out successfully"
	MsgNoMessages         = "No new messages"
	MsgInboxHeader        = "Inbox:"
	MsgDiscussionPosted   = "Message posted to community discussion"

	MsgAuthLogout     = "You need to be logged in to log out"
	MsgAuthInbox      = "You need to log in to view your inbox"
	MsgAuthSend       = "You need to log in to send messages"
	MsgAuthDiscussion = "You need to log in to join the discussion"

	UsageRegister   = "Usage: register <username> <password>"
	UsageLogin      = "Usage: login <username> <password>"
	UsageSend       = "Usage: send <recipient> <message>"
	UsageDiscussion = "Usage: discussion <message>"
)

const rule = "-------------------------------------------------------------------"

// HelpText lists every command.
const HelpText = "Available Commands:\n" +
	rule + "\n" +
	"whoami                         - Display current user\n" +
	"clear                          - Clear screen\n" +
	"register <username> <password> - Register a new user\n" +
	"login <username> <password>    - Log in as a user\n" +
	"logout                         - Log out from current user\n" +
	"inbox                          - List direct messages sent to you\n" +
	"send <recipient> <message>     - Send a message to another user\n" +
	"discussion <message>           - Post a message to community discussion\n" +
	"show <discussion|users>        - Show a panel\n" +
	"hide <discussion|users>        - Hide a panel\n" +
	"about                          - About this terminal\n" +
	"help                           - Show available commands\n" +
	rule

// AboutText is the banner printed by about.
const AboutText = rule + "\n" +
	"  ____             _                         _     _     \n" +
	" |  _ \\  __ _ _ __| | __ __      _____  _ __| | __| |___ \n" +
	" | | | |/ _` | '__| |/ / \\ \\ /\\ / / _ \\| '__| |/ _` / __|\n" +
	" | |_| | (_| | |  |   <   \\ V  V / (_) | |  | | (_| \\__ \\ \n" +
	" |____/ \\__,_|_|  |_|\\_\\   \\_/\\_/ \\___/|_|  |_|\\__,_|___/ \n" +
	"\n" +
	rule + "\n" +
	`Show available commands using "help"` + "\n" +
	"This web created by Yuefii"
