package relay

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vk/bootgridgo/internal/ctxlog"
	"github.com/vk/bootgridgo/internal/relay/session"
	"github.com/vk/bootgridgo/internal/relay/telegram"
	"github.com/vk/bootgridgo/internal/relay/upstream"
)

// Callback data values baked into the inline keyboard.
const (
	callbackSentiment = "sentiment"
	callbackTechnical = "technical"
	callbackBack      = "back"
)

// signalMessage is the request body of POST /send-signal.
type signalMessage struct {
	ChatID     int64          `json:"chat_id"`
	SignalData map[string]any `json:"signal_data"`
	NewsData   *newsData      `json:"news_data,omitempty"`
}

// newsData carries the articles to run sentiment analysis over.
type newsData struct {
	Instrument string `json:"instrument"`
	Articles   []any  `json:"articles"`
}

// statusResponse is the relay's uniform result payload.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// signalKeyboard is the two-option keyboard attached to a fresh signal.
func signalKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{{
			{Text: "Market Sentiment 📊", CallbackData: callbackSentiment},
			{Text: "Technical Analysis 📈", CallbackData: callbackTechnical},
		}},
	}
}

// backKeyboard is the single back button shown on detail views.
func backKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{{
			{Text: "⬅️ Back", CallbackData: callbackBack},
		}},
	}
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeDetail reports a failure as a detail string under the propagated
// upstream status code, or 500 for internal errors.
func writeDetail(w http.ResponseWriter, err error, fallback string) {
	code := http.StatusInternalServerError
	detail := err.Error()

	var statusErr *upstream.StatusError
	if errors.As(err, &statusErr) {
		code = statusErr.Code
		detail = fallback
	}
	writeJSON(w, code, map[string]string{"detail": detail})
}

// handleSendSignal formats and delivers a signal to a chat, remembering the
// conversation state for the keyboard callbacks.
func (s *Server) handleSendSignal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.FromContext(ctx)

	var msg signalMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		return
	}

	signalText, err := s.signals.FormatSignal(ctx, msg.SignalData)
	if err != nil {
		logger.Error("Error sending signal.", "chat_id", msg.ChatID, "error", err)
		writeDetail(w, err, "Error formatting signal")
		return
	}

	var analysis map[string]any
	if msg.NewsData != nil {
		analysis, err = s.news.AnalyzeNews(ctx, msg.NewsData.Instrument, msg.NewsData.Articles)
		if err != nil {
			logger.Error("Error sending signal.", "chat_id", msg.ChatID, "error", err)
			writeDetail(w, err, "Error analyzing news")
			return
		}
	}

	s.sessions.Put(msg.ChatID, session.State{SignalText: signalText, News: analysis})

	err = s.bot.SendMessage(ctx, telegram.SendMessage{
		ChatID:      msg.ChatID,
		Text:        signalText,
		ParseMode:   "Markdown",
		ReplyMarkup: signalKeyboard(),
	})
	if err != nil {
		logger.Error("Error sending signal.", "chat_id", msg.ChatID, "error", err)
		writeDetail(w, err, "Error sending message")
		return
	}

	logger.Info("Signal delivered.", "chat_id", msg.ChatID, "with_news", analysis != nil)
	writeJSON(w, http.StatusOK, statusResponse{Status: "success", Message: "Signal sent successfully"})
}

// handleCallback reacts to inline keyboard presses by editing the original
// message in place.
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.FromContext(ctx)

	data := mux.Vars(r)["data"]
	chatID, err := strconv.ParseInt(r.URL.Query().Get("chat_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "chat_id must be an integer"})
		return
	}
	messageID, err := strconv.ParseInt(r.URL.Query().Get("message_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "message_id must be an integer"})
		return
	}

	switch data {
	case callbackSentiment:
		state, ok := s.sessions.Get(chatID)
		if !ok {
			writeJSON(w, http.StatusOK, statusResponse{Status: "error", Message: "Session expired"})
			return
		}
		if state.News == nil {
			writeJSON(w, http.StatusOK, statusResponse{Status: "error", Message: "No news analysis available"})
			return
		}
		analysis, _ := state.News["analysis"].(string)
		err = s.bot.EditMessageText(ctx, telegram.EditMessageText{
			ChatID:      chatID,
			MessageID:   messageID,
			Text:        analysis,
			ParseMode:   "Markdown",
			ReplyMarkup: backKeyboard(),
		})

	case callbackTechnical:
		err = s.bot.EditMessageText(ctx, telegram.EditMessageText{
			ChatID:      chatID,
			MessageID:   messageID,
			Text:        "📊 Technical Analysis feature coming soon!",
			ReplyMarkup: backKeyboard(),
		})

	case callbackBack:
		state, ok := s.sessions.Get(chatID)
		if !ok {
			writeJSON(w, http.StatusOK, statusResponse{Status: "error", Message: "Session expired"})
			return
		}
		err = s.bot.EditMessageText(ctx, telegram.EditMessageText{
			ChatID:      chatID,
			MessageID:   messageID,
			Text:        state.SignalText,
			ParseMode:   "Markdown",
			ReplyMarkup: signalKeyboard(),
		})

	default:
		// Unknown callback data is acknowledged without side effects.
	}

	if err != nil {
		logger.Error("Error handling callback.", "callback", data, "chat_id", chatID, "error", err)
		writeDetail(w, err, "Error handling callback")
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "success"})
}
