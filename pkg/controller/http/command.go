package http

import (
	"encoding/json"
	"net/http"

	"github.com/clover4media/razl/pkg/domain/types"
	"github.com/clover4media/razl/pkg/usecase"
	"github.com/clover4media/razl/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// SlackCommandHandler handles Slack slash command requests
type SlackCommandHandler struct {
	uc *usecase.UseCases
}

// NewSlackCommandHandler creates a new slash command handler
func NewSlackCommandHandler(uc *usecase.UseCases) *SlackCommandHandler {
	return &SlackCommandHandler{
		uc: uc,
	}
}

// commandResponse is the immediate JSON payload Slack renders as the reply
type commandResponse struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

// ServeHTTP handles slash command requests. Slack sends them form-encoded;
// the reply goes back in the HTTP response body.
func (h *SlackCommandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse slash command"), http.StatusBadRequest)
		return
	}

	reply := h.uc.HandleCommand(ctx, &usecase.Command{
		Text:      cmd.Text,
		ChannelID: types.ChannelID(cmd.ChannelID),
		UserID:    types.UserID(cmd.UserID),
		UserName:  cmd.UserName,
	})

	resp := commandResponse{
		ResponseType: "ephemeral",
		Text:         reply.Text,
	}
	if reply.InChannel {
		resp.ResponseType = "in_channel"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to encode command response"), "slash command reply failed")
	}
}
