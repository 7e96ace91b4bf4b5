package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/diegoclair/attendance-bot/internal/domain"
	"github.com/diegoclair/attendance-bot/internal/domain/contract"
	"github.com/diegoclair/attendance-bot/internal/domain/entity"
	slackcmd "github.com/diegoclair/attendance-bot/internal/domain/slack"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

type SlackHandler struct {
	attendanceService contract.AttendanceService
	notifier          contract.Notifier
	signingSecret     string

	// replies tracks in-flight asynchronous replies to Events API messages
	replies sync.WaitGroup
}

func New(attendanceService contract.AttendanceService, notifier contract.Notifier, signingSecret string) *SlackHandler {
	return &SlackHandler{
		attendanceService: attendanceService,
		notifier:          notifier,
		signingSecret:     signingSecret,
	}
}

// Wait blocks until every pending reply has been sent.
func (h *SlackHandler) Wait() {
	h.replies.Wait()
}

func (h *SlackHandler) HandleSlashCommand(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.verifyRequest(w, r); !ok {
		return
	}

	// Parse command
	s, err := slack.SlashCommandParse(r)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if isSharedChannel(s.ChannelID, s.ChannelName) {
		h.attendanceService.RememberDestination(s.ChannelID)
	}

	// Parse our command
	cmd, err := slackcmd.ParseCommand(s.Text)
	if err != nil {
		h.respondWithError(w, domain.UserMessage(err))
		return
	}

	// Handle command
	response := h.handleCommand(r.Context(), cmd)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *SlackHandler) handleCommand(ctx context.Context, cmd *slackcmd.Command) *slack.Msg {
	reply, err := h.attendanceService.Execute(ctx, cmd)
	if err != nil {
		return h.createErrorResponse(domain.UserMessage(err))
	}

	responseType := slack.ResponseTypeInChannel
	if cmd.Type == slackcmd.CmdHelp {
		responseType = slack.ResponseTypeEphemeral
	}

	return &slack.Msg{
		ResponseType: responseType,
		Text:         reply,
	}
}

// HandleEvents receives Events API callbacks. Messages are acknowledged at once and
// answered through the notifier, so slow replies never trigger a Slack retry.
func (h *SlackHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	body, ok := h.verifyRequest(w, r)
	if !ok {
		return
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		log.Printf("[WARN] Ignoring malformed event payload: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch event.Type {
	case slackevents.URLVerification:
		verification, ok := event.Data.(*slackevents.EventsAPIURLVerificationEvent)
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(verification.Challenge))
		return

	case slackevents.CallbackEvent:
		// Slack redelivers events it considers unacknowledged; the first delivery was already handled
		if r.Header.Get("X-Slack-Retry-Num") != "" {
			w.WriteHeader(http.StatusOK)
			return
		}
		if msg, ok := event.InnerEvent.Data.(*slackevents.MessageEvent); ok {
			h.handleMessageEvent(msg)
		}
	}

	w.WriteHeader(http.StatusOK)
}

func (h *SlackHandler) handleMessageEvent(ev *slackevents.MessageEvent) {
	// bot posts, edits and joins carry a subtype or a bot id; answering them would loop
	if ev.BotID != "" || ev.SubType != "" || ev.User == "" {
		return
	}
	if strings.TrimSpace(ev.Text) == "" {
		return
	}

	msg := entity.Inbound{
		SenderID:       ev.User,
		ConversationID: ev.Channel,
		Group:          ev.ChannelType != "im",
		Text:           ev.Text,
	}

	h.replies.Add(1)
	go func() {
		defer h.replies.Done()

		ctx := context.Background()
		reply := h.attendanceService.HandleMessage(ctx, msg)
		if reply == "" {
			return
		}
		if err := h.notifier.Send(ctx, msg.ConversationID, reply); err != nil {
			log.Printf("[ERROR] %s: failed to reply in %s: %v", domain.ErrorKind(err), msg.ConversationID, err)
		}
	}()
}

// verifyRequest checks the Slack signature and restores the body for later parsing.
func (h *SlackHandler) verifyRequest(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, false
	}
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	verifier, err := slack.NewSecretsVerifier(r.Header, h.signingSecret)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return nil, false
	}

	if _, err := verifier.Write(body); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return nil, false
	}

	if err := verifier.Ensure(); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return nil, false
	}

	return body, true
}

// isSharedChannel reports whether a slash command came from a conversation that can receive broadcasts.
func isSharedChannel(channelID, channelName string) bool {
	if channelID == "" || channelName == "directmessage" {
		return false
	}
	return !strings.HasPrefix(channelID, "D")
}

func (h *SlackHandler) createErrorResponse(message string) *slack.Msg {
	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         fmt.Sprintf("❌ %s", message),
	}
}

func (h *SlackHandler) respondWithError(w http.ResponseWriter, message string) {
	response := h.createErrorResponse(message)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
