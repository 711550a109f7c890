package buissines

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/callback"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/consts"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/dto"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/entities"
)

// Messages are rendered as Telegram HTML
const timeLayout = "2006-01-02 15:04"

func esc(s string) string {
	return html.EscapeString(s)
}

func formatPrice(price float64, currency string) string {
	return currency + strconv.FormatFloat(price, 'f', -1, 64)
}

func handleOrNA(handle string) string {
	if handle == "" {
		return "N/A"
	}
	return "@" + esc(handle)
}

func renderWelcome(actor dto.Actor) string {
	var b strings.Builder
	b.WriteString("🌟 <b>Welcome to Premium Channels Bot</b> 🌟\n\n")
	fmt.Fprintf(&b, "Hello %s! 👋\n\n", esc(actor.DisplayName))
	b.WriteString("💎 <b>Browse premium plans</b>\n")
	b.WriteString("📊 <b>Track your active subscriptions</b>\n")
	b.WriteString("🚀 <b>Instant channel access after approval</b>\n\n")
	b.WriteString("Choose an option below:")
	return b.String()
}

func renderAdminWelcome(actor dto.Actor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌟 <b>Welcome Admin %s!</b> 🌟\n\n", esc(actor.DisplayName))
	b.WriteString("<b>👑 ADMIN CONTROLS:</b>\n")
	b.WriteString("➕ Add and manage channels\n")
	b.WriteString("💰 Approve or reject payments\n")
	b.WriteString("🔧 Manage the all-access plan\n\n")
	b.WriteString("<b>📋 QUICK COMMANDS:</b>\n")
	fmt.Fprintf(&b, "%s - %s\n", consts.CommandAddChannel.Slash(), consts.CommandAddChannel.Description)
	fmt.Fprintf(&b, "%s - %s\n", consts.CommandManageChannels.Slash(), consts.CommandManageChannels.Description)
	fmt.Fprintf(&b, "%s - %s\n\n", consts.CommandPending.Slash(), consts.CommandPending.Description)
	b.WriteString("Choose an option below:")
	return b.String()
}

func renderHelp(isAdmin bool) string {
	var b strings.Builder
	b.WriteString("ℹ️ <b>HELP</b>\n\n")
	b.WriteString("1️⃣ Open the plans and pick a channel\n")
	b.WriteString("2️⃣ Pay the shown amount\n")
	b.WriteString("3️⃣ Send the payment screenshot as a photo or document\n")
	b.WriteString("4️⃣ Receive your invite links once an admin approves\n\n")
	b.WriteString("<b>Commands:</b>\n")
	for _, cmd := range consts.AllCommands {
		if cmd.AdminOnly && !isAdmin {
			continue
		}
		fmt.Fprintf(&b, "%s - %s\n", cmd.Slash(), esc(cmd.Description))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderMainMenu() string {
	return "🏠 <b>Main Menu</b>\n\nWhat would you like to do?"
}

func renderSupport(hasAdmins bool) string {
	if !hasAdmins {
		return "📞 <b>Support</b>\n\nSupport is not available right now. Please try again later."
	}
	return "📞 <b>Support</b>\n\nContact the channel administrators with your question.\n" +
		"For payment issues include your Payment ID from " + consts.CommandPayments.Slash() + "."
}

func renderNoOffers() string {
	return "❌ No premium plans available at the moment.\nPlease check back later!"
}

func renderOffers(offers []entities.Offer, currency string) string {
	var b strings.Builder
	b.WriteString("💎 <b>PREMIUM PLANS AVAILABLE</b> 💎\n\n")
	for _, o := range offers {
		if o.AllAccess {
			fmt.Fprintf(&b, "✨ <b>%s</b> - %s\n", esc(o.Name), formatPrice(o.Price, currency))
			b.WriteString("   🌟 Access to ALL premium channels\n\n")
			continue
		}
		fmt.Fprintf(&b, "🔹 <b>%s</b>\n", esc(o.Name))
		fmt.Fprintf(&b, "   💰 Price: %s\n", formatPrice(o.Price, currency))
		b.WriteString("   ⏰ Duration: 30 days\n")
		if o.DemoLink != "" {
			fmt.Fprintf(&b, "   🎯 <a href=\"%s\">Demo Link</a>\n", esc(o.DemoLink))
		}
		b.WriteString("\n")
	}
	b.WriteString("Select a plan below:")
	return b.String()
}

func renderOffer(o *entities.Offer, currency string) string {
	var b strings.Builder
	if o.AllAccess {
		fmt.Fprintf(&b, "🌟 <b>%s</b> 🌟\n\n", esc(o.Name))
	} else {
		fmt.Fprintf(&b, "🎯 <b>%s</b> 🎯\n\n", esc(o.Name))
	}
	fmt.Fprintf(&b, "💰 <b>Price:</b> %s\n", formatPrice(o.Price, currency))
	b.WriteString("⏰ <b>Duration:</b> 30 days\n")
	if o.AllAccess {
		b.WriteString("🌟 <b>Features:</b> Access to ALL premium channels!\n\n")
	} else {
		b.WriteString("🌟 <b>Features:</b> Premium content access\n\n")
	}
	b.WriteString("Ready to purchase? Click below:")
	return b.String()
}

func renderDemoLinks(offers []entities.Offer) string {
	if len(offers) == 0 {
		return "❌ No demo links available at the moment."
	}

	var b strings.Builder
	b.WriteString("🎯 <b>DEMO LINKS</b> 🎯\n\n")
	for _, o := range offers {
		fmt.Fprintf(&b, "🔹 <a href=\"%s\">%s Demo</a>\n", esc(o.DemoLink), esc(o.Name))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderManageChannels(channels []entities.Channel, currency string) string {
	if len(channels) == 0 {
		return fmt.Sprintf("📋 No channels yet.\nUse %s to add your first premium channel.", consts.CommandAddChannel.Slash())
	}

	var b strings.Builder
	b.WriteString("📋 <b>CHANNEL MANAGEMENT</b> 📋\n\n")
	for _, ch := range channels {
		status := "🟢 active"
		if !ch.Active {
			status = "🔴 hidden"
		}
		fmt.Fprintf(&b, "🔹 <b>%s</b> (%s)\n", esc(ch.Name), status)
		fmt.Fprintf(&b, "   💰 Price: %s\n", formatPrice(ch.Price, currency))
		fmt.Fprintf(&b, "   🆔 Channel ID: <code>%s</code>\n", esc(ch.ExternalRef))
		fmt.Fprintf(&b, "   🔑 Key: <code>%s</code>\n", esc(ch.Key))
		if ch.DemoLink != "" {
			fmt.Fprintf(&b, "   🎯 <a href=\"%s\">Demo Link</a>\n", esc(ch.DemoLink))
		}
		fmt.Fprintf(&b, "   🔗 <a href=\"%s\">Invite Link</a>\n\n", esc(ch.InviteLink))
	}
	fmt.Fprintf(&b, "Hide or show a channel with %s &lt;key&gt; and %s &lt;key&gt;",
		consts.CommandChannelOff.Slash(), consts.CommandChannelOn.Slash())
	return b.String()
}

func renderChannelToggled(key string, active bool) string {
	if active {
		return fmt.Sprintf("✅ Channel <code>%s</code> is now available for purchase.", esc(key))
	}
	return fmt.Sprintf("✅ Channel <code>%s</code> is hidden from the plans.", esc(key))
}

func renderAllAccessStatus(plan *entities.AllAccessPlan, currency string) string {
	status := "🟢 active"
	if !plan.Active {
		status = "🔴 hidden"
	}

	var b strings.Builder
	b.WriteString("🔧 <b>ALL-ACCESS PLAN</b> 🔧\n\n")
	fmt.Fprintf(&b, "📋 <b>Name:</b> %s\n", esc(plan.Name))
	fmt.Fprintf(&b, "💰 <b>Price:</b> %s\n", formatPrice(plan.Price, currency))
	fmt.Fprintf(&b, "📊 <b>Status:</b> %s\n\n", status)
	fmt.Fprintf(&b, "%s on | off | price &lt;amount&gt;", consts.CommandAllAccess.Slash())
	return b.String()
}

func renderOnboardingName() string {
	return "➕ <b>ADD NEW PREMIUM CHANNEL</b> ➕\n\n" +
		"Let's set up your new premium channel.\n\n" +
		"📝 <b>Step 1:</b> Enter the channel name\n" +
		"Example: 'VIP Content', 'Premium Movies'\n\n" +
		"Send " + consts.CommandCancel.Slash() + " at any time to stop."
}

func renderOnboardingPrice(name, currency string) string {
	return fmt.Sprintf("✅ <b>Channel Name:</b> %s\n\n"+
		"💰 <b>Step 2:</b> Enter the price for this channel\n"+
		"Example: 200, 500, 1000 (in %s)", esc(name), esc(currency))
}

func renderOnboardingDemo(price float64, currency string) string {
	return fmt.Sprintf("✅ <b>Price:</b> %s\n\n"+
		"🎯 <b>Step 3:</b> Send a demo link (optional)\n"+
		"Send a link users can preview, or send '%s' to continue without one", formatPrice(price, currency), consts.SkipDemo)
}

func renderOnboardingForward() string {
	return "📢 <b>Step 4:</b> Forward a message from your channel\n\n" +
		"⚠️ <b>IMPORTANT:</b> Make sure I'm an admin in your channel first!\n\n" +
		"🔹 Go to your channel\n" +
		"🔹 Add this bot as admin with 'Invite Users' permission\n" +
		"🔹 Forward any message from that channel here"
}

// RenderBotNotAdmin explains how to give the bot the rights it needs
func RenderBotNotAdmin() string {
	return "❌ I need to be an admin in your channel!\n\n" +
		"Please:\n" +
		"1. Go to your channel settings\n" +
		"2. Add me as administrator\n" +
		"3. Give me 'Invite Users' permission\n" +
		"4. Forward a message again"
}

func renderChannelCreated(ch *entities.Channel, currency string) string {
	demo := "Not provided"
	if ch.DemoLink != "" {
		demo = esc(ch.DemoLink)
	}

	var b strings.Builder
	b.WriteString("✅ <b>CHANNEL ADDED SUCCESSFULLY!</b> ✅\n\n")
	b.WriteString("📋 <b>Channel Details:</b>\n")
	fmt.Fprintf(&b, "🏷️ <b>Name:</b> %s\n", esc(ch.Name))
	fmt.Fprintf(&b, "🔑 <b>Key:</b> <code>%s</code>\n", esc(ch.Key))
	fmt.Fprintf(&b, "🆔 <b>ID:</b> <code>%s</code>\n", esc(ch.ExternalRef))
	fmt.Fprintf(&b, "💰 <b>Price:</b> %s\n", formatPrice(ch.Price, currency))
	b.WriteString("⏰ <b>Duration:</b> 30 days\n")
	fmt.Fprintf(&b, "🎯 <b>Demo:</b> %s\n", demo)
	b.WriteString("🔗 <b>Invite Link:</b> Generated ✅\n\n")
	b.WriteString("🚀 <b>Your channel is now live and available for purchase!</b>")
	return b.String()
}

func renderCancelled(wasActive bool) string {
	if wasActive {
		return "❌ Channel addition cancelled."
	}
	return "Nothing to cancel."
}

func renderCheckout(o *entities.Offer, payment *entities.PendingPayment, instructions, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💰 <b>PAYMENT FOR %s</b> 💰\n\n", esc(strings.ToUpper(o.Name)))
	fmt.Fprintf(&b, "🎯 <b>Amount:</b> %s\n", formatPrice(payment.Amount, currency))
	b.WriteString("⏰ <b>Validity:</b> 30 days\n")
	fmt.Fprintf(&b, "🧾 <b>Payment ID:</b> <code>%s</code>\n\n", esc(payment.ID))
	fmt.Fprintf(&b, "💳 <b>HOW TO PAY:</b>\n%s\n\n", esc(instructions))
	b.WriteString("📸 <b>NEXT STEPS:</b>\n")
	b.WriteString("1️⃣ Complete the payment\n")
	b.WriteString("2️⃣ Take a screenshot of the successful transaction\n")
	b.WriteString("3️⃣ Send the screenshot here as a photo or document\n")
	b.WriteString("4️⃣ An admin will verify and activate your plan")
	return b.String()
}

func renderProofReceived(planName string) string {
	return fmt.Sprintf("✅ <b>PAYMENT PROOF RECEIVED</b> ✅\n\n"+
		"💎 <b>Plan:</b> %s\n"+
		"⏳ <b>Status:</b> Under review\n\n"+
		"🔔 You'll be notified once it is verified.\n"+
		"Thank you for your patience! 😊", esc(planName))
}

func renderAdminNotification(n dto.ProofNotification, currency string) string {
	var b strings.Builder
	b.WriteString("🔔 <b>NEW PAYMENT SUBMISSION</b> 🔔\n\n")
	fmt.Fprintf(&b, "👤 <b>User:</b> %s\n", esc(n.DisplayName))
	fmt.Fprintf(&b, "🆔 <b>User ID:</b> <code>%d</code>\n", n.UserID)
	fmt.Fprintf(&b, "📱 <b>Username:</b> %s\n", handleOrNA(n.Handle))
	fmt.Fprintf(&b, "💎 <b>Plan:</b> %s\n", esc(n.PlanName))
	fmt.Fprintf(&b, "💰 <b>Amount:</b> %s\n", formatPrice(n.Amount, currency))
	fmt.Fprintf(&b, "⏰ <b>Time:</b> %s\n\n", n.SubmittedAt.Format(timeLayout))
	fmt.Fprintf(&b, "<code>%s %s</code>\n", consts.CommandApprove.Slash(), esc(n.PaymentID))
	fmt.Fprintf(&b, "<code>%s %d %s</code>\n", consts.CommandApprove.Slash(), n.UserID, esc(n.PlanKey))
	fmt.Fprintf(&b, "<code>%s %s</code>", consts.CommandReject.Slash(), esc(n.PaymentID))
	return b.String()
}

func renderInvoice(planName string, amount float64, endAt time.Time, grants []dto.GrantResult, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🧾 <b>INVOICE - %s</b> 🧾\n\n", esc(strings.ToUpper(planName)))
	b.WriteString("✅ <b>Payment Status:</b> APPROVED\n")
	fmt.Fprintf(&b, "📋 <b>Plan:</b> %s\n", esc(planName))
	fmt.Fprintf(&b, "💰 <b>Amount:</b> %s\n", formatPrice(amount, currency))
	fmt.Fprintf(&b, "📅 <b>Valid Until:</b> %s\n\n", endAt.Format(timeLayout))

	links := 0
	for _, g := range grants {
		if g.InviteLink == "" {
			continue
		}
		if links == 0 {
			b.WriteString("🔗 <b>YOUR CHANNEL ACCESS:</b>\n")
		}
		fmt.Fprintf(&b, "🎯 <a href=\"%s\">Join %s</a>\n", esc(g.InviteLink), esc(g.ChannelName))
		links++
	}
	if links == 0 {
		b.WriteString("🔗 Your invite links will follow shortly. Contact support if they don't arrive.\n")
	}

	b.WriteString("\n🎉 <b>Welcome to Premium Experience!</b>\n\n")
	b.WriteString("💡 Access is valid for 30 days. Contact support if you face any issues.")
	return b.String()
}

func renderApprovalSummary(r *dto.ApprovalResult, title, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ %s for user <code>%d</code>\n", esc(title), r.Payment.UserID)
	fmt.Fprintf(&b, "🧾 Payment: <code>%s</code>\n", esc(r.Payment.ID))
	fmt.Fprintf(&b, "💎 Plan: %s\n", esc(r.PlanName))
	fmt.Fprintf(&b, "💰 Amount: %s\n", formatPrice(r.Payment.Amount, currency))
	fmt.Fprintf(&b, "📅 Valid until: %s\n", r.Subscription.EndAt.Format(timeLayout))

	failed := r.FailedGrants()
	fmt.Fprintf(&b, "🔗 Access granted: %d/%d\n", len(r.Grants)-len(failed), len(r.Grants))
	for _, g := range failed {
		name := g.ChannelName
		if name == "" {
			name = g.ChannelKey
		}
		fmt.Fprintf(&b, "   ⚠️ %s: %s\n", esc(name), esc(g.Err.Error()))
	}

	if r.InvoiceSent {
		b.WriteString("📨 Invoice sent to the user.")
	} else {
		fmt.Fprintf(&b, "⚠️ Invoice not delivered: %s", esc(errText(r.InvoiceErr)))
	}
	if len(failed) > 0 || !r.InvoiceSent {
		fmt.Fprintf(&b, "\nRetry with <code>%s %s</code>", consts.CommandRegrant.Slash(), esc(r.Payment.ID))
	}
	return b.String()
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

func renderRejected(reason string) string {
	return fmt.Sprintf("❌ <b>PAYMENT REJECTED</b> ❌\n\n"+
		"<b>Reason:</b> %s\n\n"+
		"Please contact support if you believe this is an error.\n"+
		"You can start a new checkout and resubmit your payment proof.", esc(reason))
}

func renderRejectSummary(payment *entities.PendingPayment, reason string) string {
	return fmt.Sprintf("✅ Payment <code>%s</code> rejected for user <code>%d</code>\nReason: %s",
		esc(payment.ID), payment.UserID, esc(reason))
}

func renderNoSubscriptions() string {
	return "📊 You don't have any subscriptions yet.\n\nBrowse the premium plans to get started!"
}

func renderSubscriptions(subs []entities.Subscription, names map[string]string, now time.Time) string {
	var b strings.Builder
	b.WriteString("📊 <b>YOUR SUBSCRIPTIONS</b> 📊\n\n")
	for i := range subs {
		s := &subs[i]
		status := "✅"
		if s.Expired(now) {
			status = "❌"
		}
		name := names[s.PlanKey]
		if name == "" {
			name = s.PlanKey
		}
		fmt.Fprintf(&b, "%s <b>%s</b>\n", status, esc(name))
		fmt.Fprintf(&b, "   📅 Started: %s\n", s.StartAt.Format("2006-01-02"))
		fmt.Fprintf(&b, "   ⏰ Expires: %s\n", s.EndAt.Format(timeLayout))
		fmt.Fprintf(&b, "   📊 Days Left: %d\n\n", s.DaysLeft(now))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderNoPayments() string {
	return "💰 You haven't made any payments yet."
}

func paymentStatusLabel(status entities.PaymentStatus) string {
	switch status {
	case entities.PaymentStatusPending:
		return "⏳ Awaiting proof"
	case entities.PaymentStatusSubmitted:
		return "🔍 Under review"
	case entities.PaymentStatusApproved:
		return "✅ Approved"
	case entities.PaymentStatusRejected:
		return "❌ Rejected"
	default:
		return string(status)
	}
}

func renderPayments(payments []entities.PendingPayment, names map[string]string, currency string) string {
	var b strings.Builder
	b.WriteString("💰 <b>PAYMENT STATUS</b> 💰\n\n")
	for _, p := range payments {
		name := names[p.PlanKey]
		if name == "" {
			name = p.PlanKey
		}
		fmt.Fprintf(&b, "%s <b>%s</b> - %s\n", paymentStatusLabel(p.Status), esc(name), formatPrice(p.Amount, currency))
		fmt.Fprintf(&b, "   🧾 <code>%s</code> · %s\n", esc(p.ID), p.CreatedAt.Format(timeLayout))
		if p.Status == entities.PaymentStatusRejected && p.RejectReason != "" {
			fmt.Fprintf(&b, "   Reason: %s\n", esc(p.RejectReason))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderPendingPayments(views []dto.PendingPaymentView, currency string) string {
	if len(views) == 0 {
		return "✅ No pending payments."
	}

	var b strings.Builder
	b.WriteString("💰 <b>PENDING PAYMENTS</b> 💰\n\n")
	for _, v := range views {
		fmt.Fprintf(&b, "👤 <b>%s</b> (%s)\n", esc(v.DisplayName), handleOrNA(v.Handle))
		fmt.Fprintf(&b, "   🆔 ID: <code>%d</code>\n", v.Payment.UserID)
		fmt.Fprintf(&b, "   💎 Plan: %s\n", esc(v.PlanName))
		fmt.Fprintf(&b, "   💰 Amount: %s\n", formatPrice(v.Payment.Amount, currency))
		if v.Payment.SubmittedAt != nil {
			fmt.Fprintf(&b, "   ⏰ Submitted: %s\n", v.Payment.SubmittedAt.Format(timeLayout))
		}
		fmt.Fprintf(&b, "   ⚡ <code>%s %s</code> | <code>%s %s</code>\n\n",
			consts.CommandApprove.Slash(), esc(v.Payment.ID),
			consts.CommandReject.Slash(), esc(v.Payment.ID))
	}
	return strings.TrimRight(b.String(), "\n")
}

func mainKeyboard() *dto.Keyboard {
	return &dto.Keyboard{Reply: [][]string{
		{consts.ButtonPlans, consts.ButtonSubscriptions},
		{consts.ButtonPayments, consts.ButtonSupport},
		{consts.ButtonDemo, consts.ButtonHelp},
	}}
}

func adminKeyboard() *dto.Keyboard {
	return &dto.Keyboard{Reply: [][]string{
		{consts.ButtonAddChannel, consts.ButtonManageChannels},
		{consts.ButtonPendingPayments, consts.ButtonAllAccess},
		{consts.ButtonPlans, consts.ButtonSubscriptions},
	}}
}

func mainMenuInline() *dto.Keyboard {
	return &dto.Keyboard{Inline: [][]dto.Button{
		{{Text: "💎 View Plans", CallbackData: callback.MustEncode(callback.ShowPlans())}},
	}}
}

func showPlansKeyboard() *dto.Keyboard {
	return mainMenuInline()
}

func backToPlansKeyboard() *dto.Keyboard {
	return &dto.Keyboard{Inline: [][]dto.Button{
		{{Text: "🔙 Back to Plans", CallbackData: callback.MustEncode(callback.ShowPlans())}},
	}}
}

// offersKeyboard has one button per offer. Offers whose key cannot be encoded are left out
func (uc *UseCase) offersKeyboard(offers []entities.Offer) *dto.Keyboard {
	rows := make([][]dto.Button, 0, len(offers)+1)
	for _, o := range offers {
		data, err := callback.Encode(callback.SelectOffer(o.Key))
		if err != nil {
			uc.logger.Warn().Err(err).Str("plan_key", o.Key).Msg("Skipping offer with unencodable key")
			continue
		}
		label := fmt.Sprintf("💎 %s - %s", o.Name, formatPrice(o.Price, uc.settings.CurrencySymbol))
		if o.AllAccess {
			label = fmt.Sprintf("🌟 %s - %s (All Channels)", o.Name, formatPrice(o.Price, uc.settings.CurrencySymbol))
		}
		rows = append(rows, []dto.Button{{Text: label, CallbackData: data}})
	}
	rows = append(rows, []dto.Button{{Text: "🏠 Main Menu", CallbackData: callback.MustEncode(callback.MainMenu())}})
	return &dto.Keyboard{Inline: rows}
}

func (uc *UseCase) offerKeyboard(o *entities.Offer) *dto.Keyboard {
	var rows [][]dto.Button

	data, err := callback.Encode(callback.Purchase(o.Key))
	if err != nil {
		uc.logger.Warn().Err(err).Str("plan_key", o.Key).Msg("Offer key cannot be encoded for purchase")
	} else {
		rows = append(rows, []dto.Button{{Text: "💳 Purchase " + o.Name, CallbackData: data}})
	}

	if isLink(o.DemoLink) {
		rows = append(rows, []dto.Button{{Text: "🎯 View Demo", URL: o.DemoLink}})
	}
	rows = append(rows, []dto.Button{{Text: "🔙 Back to Plans", CallbackData: callback.MustEncode(callback.ShowPlans())}})
	return &dto.Keyboard{Inline: rows}
}

// isLink reports whether s can be used as a URL button target
func isLink(s string) bool {
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "tg://")
}
