// Package consts contains constants for the shop domain
package consts

// Command represents a bot command
type Command struct {
	Name        string
	Description string
	AdminOnly   bool
}

// Bot commands
var (
	CommandStart          = Command{Name: "start", Description: "Open the main menu"}
	CommandHelp           = Command{Name: "help", Description: "Show help message"}
	CommandPlans          = Command{Name: "plans", Description: "Browse premium plans"}
	CommandSubscriptions  = Command{Name: "subscriptions", Description: "Show your subscriptions"}
	CommandPayments       = Command{Name: "payments", Description: "Show your payment status"}
	CommandDemo           = Command{Name: "demo", Description: "Show demo links"}
	CommandHealth         = Command{Name: "health", Description: "Check that the bot is running"}
	CommandCancel         = Command{Name: "cancel", Description: "Cancel the current dialogue"}
	CommandAddChannel     = Command{Name: "addchannel", Description: "Add a premium channel", AdminOnly: true}
	CommandManageChannels = Command{Name: "managechannels", Description: "List every channel", AdminOnly: true}
	CommandChannelOn      = Command{Name: "channel_on", Description: "Reactivate a channel: /channel_on <key>", AdminOnly: true}
	CommandChannelOff     = Command{Name: "channel_off", Description: "Deactivate a channel: /channel_off <key>", AdminOnly: true}
	CommandAllAccess      = Command{Name: "allaccess", Description: "Manage the all-access plan: /allaccess on|off|price <n>", AdminOnly: true}
	CommandPending        = Command{Name: "pending", Description: "List payments awaiting review", AdminOnly: true}
	CommandApprove        = Command{Name: "approve", Description: "Approve: /approve <payment_id> or /approve <user_id> <plan_key>", AdminOnly: true}
	CommandReject         = Command{Name: "reject", Description: "Reject: /reject <payment_id> [reason]", AdminOnly: true}
	CommandRegrant        = Command{Name: "regrant", Description: "Re-send access: /regrant <payment_id>", AdminOnly: true}
)

// AllCommands contains all available bot commands for menu registration
var AllCommands = []Command{
	CommandStart,
	CommandHelp,
	CommandPlans,
	CommandSubscriptions,
	CommandPayments,
	CommandDemo,
	CommandHealth,
	CommandCancel,
	CommandAddChannel,
	CommandManageChannels,
	CommandChannelOn,
	CommandChannelOff,
	CommandAllAccess,
	CommandPending,
	CommandApprove,
	CommandReject,
	CommandRegrant,
}

// Slash returns the command as typed in chat
func (c Command) Slash() string {
	return "/" + c.Name
}

// Reply keyboard labels for buyers
const (
	ButtonPlans         = "💎 Premium Plans"
	ButtonSubscriptions = "📊 My Subscriptions"
	ButtonPayments      = "💰 Payment Status"
	ButtonSupport       = "📞 Contact Support"
	ButtonDemo          = "🎯 Demo Links"
	ButtonHelp          = "ℹ️ Help"
)

// Reply keyboard labels for administrators
const (
	ButtonAddChannel      = "➕ Add Channel"
	ButtonManageChannels  = "📋 Manage Channels"
	ButtonPendingPayments = "💰 Pending Payments"
	ButtonAllAccess       = "🔧 Server Plans"
)

// SkipDemo is the answer that leaves the demo link empty during onboarding
const SkipDemo = "skip"

// DefaultRejectReason is sent to the buyer when the admin gives none
const DefaultRejectReason = "Payment verification failed"
