package handler

import (
	"strconv"
	"strings"

	"absence-tracker/internal/config"
	"absence-tracker/internal/dialog"
	"absence-tracker/internal/notification"
	"absence-tracker/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Sender is the part of tgbotapi.BotAPI the handler talks to.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Handler struct {
	bot            Sender
	absenceService *service.AbsenceService
	notifier       *notification.Notifier
	// one dialog per chat
	dialogs map[int64]*dialog.Controller
	config  *config.Config
}

func NewHandler(bot Sender, absenceService *service.AbsenceService, cfg *config.Config) *Handler {
	return &Handler{
		bot:            bot,
		absenceService: absenceService,
		notifier:       notification.NewNotifier(),
		dialogs:        make(map[int64]*dialog.Controller),
		config:         cfg,
	}
}

func (h *Handler) HandleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		h.HandleUpdate(update)
	}
}

func (h *Handler) HandleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.handleCallbackQuery(update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	h.handleMessage(update.Message)
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	username := ""
	if message.From != nil {
		username = message.From.UserName
	}
	logrus.Infof("[%s] %s", username, message.Text)

	if message.IsCommand() {
		h.handleCommand(message)
		return
	}

	// Plain text while a dialog is open becomes the reason.
	if d, ok := h.dialogs[message.Chat.ID]; ok && d.IsOpen() {
		d.SetReason(strings.TrimSpace(message.Text))
		h.sendDialogCard(message.Chat.ID, d)
		return
	}

	h.sendInfo(message.Chat.ID, "Send /help to see the available commands.")
}

// dialogFor returns the chat's controller, creating it on first use.
func (h *Handler) dialogFor(chatID int64) *dialog.Controller {
	if d, ok := h.dialogs[chatID]; ok {
		return d
	}

	logger := h.absenceService.Logger().WithField("chat_id", chatID)
	d := dialog.NewController(logger)
	d.OnChange(func(st dialog.State) {
		logger.WithFields(logrus.Fields{
			"open":    st.Open,
			"mode":    st.Mode,
			"session": st.Session,
		}).Debug("Dialog state changed")
	})
	h.dialogs[chatID] = d
	return d
}

// Callback data: "dialog:<action>:<session>[:<arg>]".
func callbackData(action string, session uint64, arg ...string) string {
	parts := append([]string{"dialog", action, strconv.FormatUint(session, 10)}, arg...)
	return strings.Join(parts, ":")
}

func parseCallbackData(data string) (action string, session uint64, arg string, ok bool) {
	parts := strings.SplitN(data, ":", 4)
	if len(parts) < 3 || parts[0] != "dialog" {
		return "", 0, "", false
	}
	session, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return "", 0, "", false
	}
	if len(parts) == 4 {
		arg = parts[3]
	}
	return parts[1], session, arg, true
}

func (h *Handler) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	defer func() {
		if _, err := h.bot.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
			logrus.WithError(err).Warn("Failed to answer callback")
		}
	}()

	if callback.Message == nil || callback.Message.Chat == nil {
		return
	}
	chatID := callback.Message.Chat.ID

	action, session, arg, ok := parseCallbackData(callback.Data)
	if !ok {
		logrus.WithField("data", callback.Data).Warn("Unknown callback")
		return
	}

	d, exists := h.dialogs[chatID]
	if !exists || !d.IsOpen() || d.Session() != session {
		h.sendWarning(chatID, "This dialog is no longer active. Use /open to start a new one.")
		return
	}

	switch action {
	case "save":
		h.saveAbsence(chatID, d)
	case "delete":
		h.deleteAbsence(chatID, d)
	case "close":
		h.closeDialog(chatID, d)
	case "type":
		h.applyField(chatID, d, "type", arg)
	default:
		logrus.WithField("action", action).Warn("Unknown dialog action")
	}
}

func (h *Handler) send(msg tgbotapi.MessageConfig) {
	if _, err := h.bot.Send(msg); err != nil {
		logrus.WithError(err).WithField("chat_id", msg.ChatID).Error("Failed to send message")
	}
}

func (h *Handler) sendText(chatID int64, text string) {
	h.send(tgbotapi.NewMessage(chatID, text))
}

func (h *Handler) sendSuccess(chatID int64, text string) {
	h.sendText(chatID, h.notifier.Success(text).Text())
}

func (h *Handler) sendError(chatID int64, text string) {
	h.sendText(chatID, h.notifier.Error(text).Text())
}

func (h *Handler) sendWarning(chatID int64, text string) {
	h.sendText(chatID, h.notifier.Warning(text).Text())
}

func (h *Handler) sendInfo(chatID int64, text string) {
	h.sendText(chatID, h.notifier.Info(text).Text())
}
