package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/config"
	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/models"
	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/service"
)

// broadcastDelay paces fan-out sends to stay inside Telegram rate limits.
const broadcastDelay = 50 * time.Millisecond

var slideCountChoices = []int{7, 10, 15}

// ReceiptArchive stores a payment screenshot durably and returns its reference.
type ReceiptArchive interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

type Bot struct {
	cfg        config.Config
	api        *tgbotapi.BotAPI
	log        *slog.Logger
	accounts   *service.AccountService
	credits    *service.CreditService
	generation *service.GenerationService
	archive    ReceiptArchive
	state      *StateManager
	httpClient *http.Client
	channel    string
}

func NewBot(cfg config.Config, api *tgbotapi.BotAPI, log *slog.Logger, accounts *service.AccountService, credits *service.CreditService, generation *service.GenerationService, archive ReceiptArchive) *Bot {
	return &Bot{
		cfg:        cfg,
		api:        api,
		log:        log,
		accounts:   accounts,
		credits:    credits,
		generation: generation,
		archive:    archive,
		state:      NewStateManager(),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		channel:    cfg.SubscriptionChannel,
	}
}

// Run services updates by long polling until the context ends. In webhook
// mode the admin server feeds HandleUpdate instead.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	b.log.Info("telegram bot started", "mode", "polling")

	fanOut(ctx, updates, b.HandleUpdate)
	b.api.StopReceivingUpdates()
	return ctx.Err()
}

// fanOut handles each update on its own goroutine, one logical task per
// inbound update, so a slow generation in one chat never delays another.
// Returns after the context ends and every started handler has finished.
func fanOut(ctx context.Context, updates tgbotapi.UpdatesChannel, handle func(context.Context, tgbotapi.Update)) {
	var wg sync.WaitGroup
	for {
		select {
		case update := <-updates:
			wg.Add(1)
			go func() {
				defer wg.Done()
				handle(ctx, update)
			}()
		case <-ctx.Done():
			wg.Wait()
			return
		}
	}
}

// HandleUpdate dispatches one inbound update, regardless of transport.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	if len(msg.Photo) > 0 || msg.Document != nil {
		session := b.state.Get(msg.Chat.ID)
		if session.State == StateAwaitingPaymentProof {
			b.handlePaymentProof(ctx, msg, session)
		}
		return
	}

	if msg.Text != "" {
		b.handleText(ctx, msg)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg)
	case "admin":
		if int64(msg.From.ID) != b.cfg.AdminID || b.cfg.AdminID == 0 {
			return
		}
		acct, err := b.accounts.Get(ctx, int64(msg.From.ID))
		if err != nil {
			b.log.Error("load admin account", "err", err)
			return
		}
		lang := models.LangUzbek
		if acct != nil {
			lang = acct.Lang
		}
		b.showAdminPanel(msg.Chat.ID, packFor(lang))
	default:
		acct, err := b.accounts.Get(ctx, int64(msg.From.ID))
		if err != nil || acct == nil {
			return
		}
		b.sendText(msg.Chat.ID, packFor(acct.Lang).Error)
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	userID := int64(msg.From.ID)
	b.state.Reset(msg.Chat.ID)

	var referrerID *int64
	if args := strings.TrimSpace(msg.CommandArguments()); args != "" {
		if ref, err := strconv.ParseInt(args, 10, 64); err == nil && ref != userID {
			referrerID = &ref
		}
	}

	acct, _, bonusGranted, err := b.accounts.Register(ctx, userID, msg.From.UserName, msg.From.FirstName, msg.From.LastName, referrerID)
	if err != nil {
		b.log.Error("register account", "err", err, "user_id", userID)
		return
	}

	if bonusGranted && referrerID != nil {
		b.sendText(*referrerID, "🎉 **Tabriklaymiz!**\nSizning havolangiz orqali yangi foydalanuvchi qo'shildi.\n💰 **+1 slayd** qo'shildi!")
	}

	pack := packFor(acct.Lang)
	if !b.isSubscribed(userID) {
		b.sendSubscribePrompt(msg.Chat.ID, pack)
		return
	}
	b.showMainMenu(msg.Chat.ID, pack)
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	userID := int64(msg.From.ID)
	acct, err := b.accounts.Get(ctx, userID)
	if err != nil {
		b.log.Error("load account", "err", err, "user_id", userID)
		return
	}
	if acct == nil {
		return
	}

	pack := packFor(acct.Lang)
	session := b.state.Get(msg.Chat.ID)
	text := msg.Text

	switch session.State {
	case StateChoosingPackage:
		b.handlePackageChoice(msg.Chat.ID, session, pack, text)
		return
	case StateAwaitingPaymentProof:
		if text == pack.Cancel {
			b.state.Reset(msg.Chat.ID)
			b.showMainMenu(msg.Chat.ID, pack)
		}
		return
	case StateAwaitingBroadcast:
		if userID != b.cfg.AdminID {
			b.state.Reset(msg.Chat.ID)
			return
		}
		if text == pack.Cancel {
			b.state.Reset(msg.Chat.ID)
			b.sendText(msg.Chat.ID, pack.BroadcastCancel)
			return
		}
		b.runBroadcast(ctx, msg.Chat.ID, pack, text)
		b.state.Reset(msg.Chat.ID)
		return
	}

	switch text {
	case pack.Btns[0]: // pricing
		kb := tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(pack.PackageBtns[0]),
				tgbotapi.NewKeyboardButton(pack.PackageBtns[1]),
			),
			tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(pack.PackageBtns[2])),
			tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(pack.Cancel)),
		)
		kb.ResizeKeyboard = true
		b.sendTextWithMarkup(msg.Chat.ID, pack.Tarif, kb)
		session.State = StateChoosingPackage
		b.state.Set(msg.Chat.ID, session)

	case pack.Btns[1]: // profile
		b.showProfile(ctx, msg.Chat.ID, acct, pack)

	case pack.Btns[2]: // invite
		b.showReferralLink(ctx, msg.Chat.ID, acct, pack)

	case pack.Btns[3]: // guide
		b.sendText(msg.Chat.ID, pack.HelpText)

	case pack.Btns[4]: // language
		kb := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🇺🇿 O'zbekcha", "lang_uz")),
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🇷🇺 Русский", "lang_ru")),
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🇬🇧 English", "lang_en")),
		)
		b.sendTextWithMarkup(msg.Chat.ID, "Tilni tanlang / Select language:", kb)

	case pack.ShareBtn:
		link := b.referralLink(acct.ID)
		b.sendText(msg.Chat.ID, fmt.Sprintf("🔗 Taklif havolangiz:\n\n`%s`", link))

	case pack.Cancel:
		b.state.Reset(msg.Chat.ID)
		b.showMainMenu(msg.Chat.ID, pack)

	default:
		b.handleTopic(msg.Chat.ID, acct, pack, text)
	}
}

func (b *Bot) handlePackageChoice(chatID int64, session *Session, pack Pack, text string) {
	var kind models.PackageKind
	switch text {
	case pack.PackageBtns[0]:
		kind = models.PackageSingleSlide
	case pack.PackageBtns[1]:
		kind = models.PackageFiveSlides
	case pack.PackageBtns[2]:
		kind = models.PackageUnlimited
	case pack.Cancel:
		b.state.Reset(chatID)
		b.showMainMenu(chatID, pack)
		return
	default:
		b.sendText(chatID, pack.Error)
		return
	}

	pkg := models.Packages[kind]
	session.State = StateAwaitingPaymentProof
	session.Package = kind
	session.Amount = pkg.PriceSo
	b.state.Set(chatID, session)

	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(pack.Cancel)),
	)
	kb.ResizeKeyboard = true
	b.sendTextWithMarkup(chatID, fmt.Sprintf("💳 To'lov summasi: %d so'm\n📸 To'lov chekini yuboring.", pkg.PriceSo), kb)
}

// handleTopic treats any other text as a slide topic: a quick balance look
// before offering slide counts, the real debit happens at generation time.
func (b *Bot) handleTopic(chatID int64, acct *models.Account, pack Pack, topic string) {
	if !acct.IsPremium && acct.Balance <= 0 {
		b.sendText(chatID, pack.NoBal)
		return
	}
	b.state.SetTopic(chatID, topic)

	var row []tgbotapi.InlineKeyboardButton
	for _, n := range slideCountChoices {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("📄 %d slayd", n), fmt.Sprintf("gen:%d", n)))
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(row)
	b.sendTextWithMarkup(chatID, fmt.Sprintf(pack.GenPrompt, topic), kb)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.From == nil {
		return
	}
	data := cb.Data

	switch {
	case data == "check_sub":
		b.handleCheckSubscription(ctx, cb)
	case strings.HasPrefix(data, "lang_"):
		b.handleLanguageChange(ctx, cb)
	case strings.HasPrefix(data, "gen:"):
		b.handleGenerate(ctx, cb)
	case strings.HasPrefix(data, "admin_"):
		b.handleAdminCallback(ctx, cb)
	default:
		b.answerCallback(cb.ID, "")
	}
}

func (b *Bot) handleCheckSubscription(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	userID := int64(cb.From.ID)
	if !b.isSubscribed(userID) {
		b.answerCallbackAlert(cb.ID, "❌ Hali a'zo bo'lmadingiz!")
		return
	}
	b.answerCallback(cb.ID, "")

	del := tgbotapi.NewDeleteMessage(cb.Message.Chat.ID, cb.Message.MessageID)
	if _, err := b.api.Request(del); err != nil {
		b.log.Error("delete subscribe prompt", "err", err)
	}

	acct, _, _, err := b.accounts.Register(ctx, userID, cb.From.UserName, cb.From.FirstName, cb.From.LastName, nil)
	if err != nil {
		b.log.Error("register on subscription check", "err", err, "user_id", userID)
		return
	}
	b.showMainMenu(cb.Message.Chat.ID, packFor(acct.Lang))
}

func (b *Bot) handleLanguageChange(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	code := strings.TrimPrefix(cb.Data, "lang_")
	if !models.ValidLanguage(code) {
		b.answerCallbackAlert(cb.ID, "❌ Noto'g'ri til!")
		return
	}
	userID := int64(cb.From.ID)
	lang := models.Language(code)
	if err := b.accounts.SetLanguage(ctx, userID, lang); err != nil {
		b.log.Error("set language", "err", err, "user_id", userID)
		b.answerCallbackAlert(cb.ID, packFor(lang).Error)
		return
	}
	pack := packFor(lang)
	b.answerCallback(cb.ID, pack.LangName)
	b.showMainMenu(cb.Message.Chat.ID, pack)
}

func (b *Bot) handleGenerate(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	b.answerCallback(cb.ID, "")
	userID := int64(cb.From.ID)
	chatID := cb.Message.Chat.ID

	acct, err := b.accounts.Get(ctx, userID)
	if err != nil {
		b.log.Error("load account", "err", err, "user_id", userID)
		return
	}
	if acct == nil {
		return
	}
	pack := packFor(acct.Lang)

	slideCount, err := strconv.Atoi(strings.TrimPrefix(cb.Data, "gen:"))
	if err != nil || slideCount <= 0 {
		b.sendText(chatID, pack.Error)
		return
	}
	topic := b.state.Get(chatID).Topic
	if topic == "" {
		b.sendText(chatID, pack.Error)
		return
	}

	waitMsg, waitErr := b.api.Send(newMarkdownMessage(chatID, pack.Wait))
	if waitErr != nil {
		b.log.Error("send wait message", "err", waitErr)
	}

	err = b.generation.Generate(ctx, acct, service.GenerationRequest{
		ChatID:     chatID,
		Topic:      topic,
		SlideCount: slideCount,
		Caption:    pack.Done,
	})

	if waitErr == nil {
		if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, waitMsg.MessageID)); err != nil {
			b.log.Error("delete wait message", "err", err)
		}
	}

	switch {
	case err == nil:
		b.state.SetTopic(chatID, "")
	case errors.Is(err, service.ErrInsufficientBalance):
		b.sendText(chatID, pack.NoBal)
	default:
		b.log.Error("generation failed", "err", err, "user_id", userID)
		b.sendText(chatID, pack.Error)
	}
}

func (b *Bot) handlePaymentProof(ctx context.Context, msg *tgbotapi.Message, session *Session) {
	userID := int64(msg.From.ID)
	acct, err := b.accounts.Get(ctx, userID)
	if err != nil || acct == nil {
		return
	}
	pack := packFor(acct.Lang)

	var fileID string
	if len(msg.Photo) > 0 {
		fileID = msg.Photo[len(msg.Photo)-1].FileID
	} else if msg.Document != nil {
		fileID = msg.Document.FileID
	}
	if fileID == "" {
		return
	}

	proofRef := fileID
	if b.archive != nil {
		if url, err := b.archiveReceipt(ctx, fileID); err != nil {
			b.log.Error("archive receipt", "err", err, "user_id", userID)
		} else {
			proofRef = url
		}
	}

	paymentID, err := b.credits.RecordPayment(ctx, userID, session.Package, proofRef)
	if err != nil {
		b.log.Error("record payment", "err", err, "user_id", userID)
		b.sendText(msg.Chat.ID, pack.Error)
		return
	}

	if b.cfg.AdminID != 0 {
		photo := tgbotapi.NewPhoto(b.cfg.AdminID, tgbotapi.FileID(fileID))
		photo.Caption = fmt.Sprintf(
			"🆕 Yangi to'lov!\n\n👤 %s (ID: `%d`)\n💳 Paket: %s\n💰 Summa: %d so'm\n🆔 Payment ID: %d",
			acct.FirstName, userID, session.Package, session.Amount, paymentID,
		)
		photo.ParseMode = tgbotapi.ModeMarkdown
		if _, err := b.api.Send(photo); err != nil {
			b.log.Error("forward receipt to admin", "err", err)
		}
	}

	b.sendText(msg.Chat.ID, pack.PaymentSent)
	b.state.Reset(msg.Chat.ID)
	b.showMainMenu(msg.Chat.ID, pack)
}

// archiveReceipt pulls the screenshot from Telegram and stores a durable copy.
func (b *Bot) archiveReceipt(ctx context.Context, fileID string) (string, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return "", fmt.Errorf("get file: %w", err)
	}
	if file.FilePath == "" {
		return "", fmt.Errorf("file path empty")
	}
	url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", b.api.Token, file.FilePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("telegram file status: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read file body: %w", err)
	}

	contentType := http.DetectContentType(body)
	return b.archive.Upload(ctx, body, contentType)
}

func (b *Bot) showProfile(ctx context.Context, chatID int64, acct *models.Account, pack Pack) {
	status := "👤 Oddiy"
	if acct.IsPremium {
		status = "⭐ VIP PREMIUM"
	}
	refCount, err := b.accounts.ReferralCount(ctx, acct.ID)
	if err != nil {
		b.log.Error("count referrals", "err", err, "user_id", acct.ID)
	}
	name := acct.FirstName
	if name == "" {
		name = "Noma'lum"
	}
	b.sendText(chatID, fmt.Sprintf(
		"📊 **SHAXSIY KABINET**\n\n👤 Ism: %s\n🆔 ID: `%d`\n💰 Balans: **%d slayd**\n👥 Taklif qilingan: **%d ta**\n🏷 Status: **%s**\n📅 Ro'yxatdan o'tgan: %s",
		name, acct.ID, acct.Balance, refCount, status, acct.CreatedAt.Format("2006-01-02"),
	))
}

func (b *Bot) showReferralLink(ctx context.Context, chatID int64, acct *models.Account, pack Pack) {
	link := b.referralLink(acct.ID)
	count, err := b.accounts.ReferralCount(ctx, acct.ID)
	if err != nil {
		b.log.Error("count referrals", "err", err, "user_id", acct.ID)
	}
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(pack.ShareBtn)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(pack.Cancel)),
	)
	kb.ResizeKeyboard = true
	b.sendTextWithMarkup(chatID, fmt.Sprintf(
		"%s🔥 Har bir do'stingiz uchun **+1 BEPUL slayd**!\n\n🔗 Havolangiz:\n%s\n\n👥 Taklif qilingan: **%d ta**",
		pack.RefText, link, count,
	), kb)
}

func (b *Bot) referralLink(userID int64) string {
	return fmt.Sprintf("https://t.me/%s?start=%d", b.api.Self.UserName, userID)
}

func (b *Bot) showAdminPanel(chatID int64, pack Pack) {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Statistika", "admin_stats"),
			tgbotapi.NewInlineKeyboardButtonData("📢 Broadcast", "admin_broadcast"),
		),
	)
	b.sendTextWithMarkup(chatID, pack.AdminPanel, kb)
}

func (b *Bot) handleAdminCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	userID := int64(cb.From.ID)
	if userID != b.cfg.AdminID || b.cfg.AdminID == 0 {
		b.answerCallbackAlert(cb.ID, "❌ Ruxsat yo'q!")
		return
	}
	acct, err := b.accounts.Get(ctx, userID)
	if err != nil {
		b.log.Error("load admin account", "err", err)
		return
	}
	lang := models.LangUzbek
	if acct != nil {
		lang = acct.Lang
	}
	pack := packFor(lang)
	chatID := cb.Message.Chat.ID

	switch cb.Data {
	case "admin_stats":
		b.answerCallback(cb.ID, "")
		stats, err := b.accounts.Stats(ctx)
		if err != nil {
			b.log.Error("aggregate stats", "err", err)
			b.sendText(chatID, pack.Error)
			return
		}
		b.sendText(chatID, fmt.Sprintf(
			"📊 **Bot statistikasi**\n\n👥 Foydalanuvchilar: %d\n💰 Jami balans: %d\n👑 Premium: %d",
			stats.TotalAccounts, stats.TotalBalance, stats.TotalPremium,
		))
	case "admin_broadcast":
		b.answerCallback(cb.ID, "")
		session := b.state.Get(chatID)
		session.State = StateAwaitingBroadcast
		b.state.Set(chatID, session)
		kb := tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(pack.Cancel)),
		)
		kb.ResizeKeyboard = true
		b.sendTextWithMarkup(chatID, pack.BroadcastStart, kb)
	}
}

// Broadcast fans the text out to every account, paced and best effort: one
// bad recipient never aborts the rest. Returns the number of successful
// sends. Shared by the /admin chat flow and the admin HTTP API.
func (b *Bot) Broadcast(ctx context.Context, text string) (int, error) {
	ids, err := b.accounts.ListIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list account ids: %w", err)
	}

	count := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		if _, err := b.api.Send(newMarkdownMessage(id, text)); err != nil {
			b.log.Error("broadcast send", "err", err, "user_id", id)
			continue
		}
		count++
		time.Sleep(broadcastDelay)
	}
	return count, nil
}

func (b *Bot) runBroadcast(ctx context.Context, adminChatID int64, pack Pack, text string) {
	count, err := b.Broadcast(ctx, text)
	if err != nil {
		b.log.Error("broadcast", "err", err)
		b.sendText(adminChatID, pack.Error)
		return
	}
	b.sendText(adminChatID, fmt.Sprintf(pack.BroadcastSent, count))
}

// NotifyPaymentResolved tells the user their package was applied, in their
// language. Called by the admin HTTP server after manual confirmation.
func (b *Bot) NotifyPaymentResolved(ctx context.Context, record *models.PaymentRecord, pkg models.Package) {
	acct, err := b.accounts.Get(ctx, record.UserID)
	if err != nil || acct == nil {
		b.log.Error("load account for payment notice", "err", err, "user_id", record.UserID)
		return
	}
	pack := packFor(acct.Lang)
	if pkg.Premium {
		b.sendText(record.UserID, pack.PremiumActivated)
		return
	}
	b.sendText(record.UserID, fmt.Sprintf(pack.BalanceAdded, pkg.Credits))
}

func (b *Bot) isSubscribed(userID int64) bool {
	if b.channel == "" {
		return true
	}
	cfg := tgbotapi.ChatConfigWithUser{UserID: userID}
	if id, err := strconv.ParseInt(b.channel, 10, 64); err == nil {
		cfg.ChatID = id
	} else {
		cfg.SuperGroupUsername = b.channel
	}

	member, err := b.api.GetChatMember(tgbotapi.GetChatMemberConfig{ChatConfigWithUser: cfg})
	if err != nil {
		// Fail closed: an unreachable channel reads as not subscribed.
		b.log.Warn("subscription check failed", "err", err, "user_id", userID)
		return false
	}
	switch strings.ToLower(member.Status) {
	case "creator", "administrator", "member":
		return true
	}
	return false
}

func (b *Bot) sendSubscribePrompt(chatID int64, pack Pack) {
	channelLink := "https://t.me/" + strings.TrimPrefix(b.channel, "@")
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(pack.BtnJoin, channelLink),
			tgbotapi.NewInlineKeyboardButtonData(pack.BtnCheck, "check_sub"),
		),
	)
	b.sendTextWithMarkup(chatID, fmt.Sprintf("%s\n\n%s", pack.SubErr, b.channel), kb)
}

func (b *Bot) showMainMenu(chatID int64, pack Pack) {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(pack.Btns[0]),
			tgbotapi.NewKeyboardButton(pack.Btns[1]),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(pack.Btns[2]),
			tgbotapi.NewKeyboardButton(pack.Btns[3]),
		),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(pack.Btns[4])),
	)
	kb.ResizeKeyboard = true
	b.sendTextWithMarkup(chatID, pack.Welcome, kb)
}

func (b *Bot) sendText(chatID int64, text string) {
	if _, err := b.api.Send(newMarkdownMessage(chatID, text)); err != nil {
		b.log.Error("send text", "err", err, "chat_id", chatID)
	}
}

func (b *Bot) sendTextWithMarkup(chatID int64, text string, markup any) {
	msg := newMarkdownMessage(chatID, text)
	msg.ReplyMarkup = markup
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send text", "err", err, "chat_id", chatID)
	}
}

func (b *Bot) answerCallback(id, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(id, text)); err != nil {
		b.log.Error("callback ack", "err", err)
	}
}

func (b *Bot) answerCallbackAlert(id, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallbackWithAlert(id, text)); err != nil {
		b.log.Error("callback alert", "err", err)
	}
}

func newMarkdownMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	return msg
}
