// README: Operator notification and human-agent handoff delivery.
package whatsapp

import (
	"context"
	"fmt"

	"github.com/PyDenTech/setrae-bot/internal/config"
)

// Notifier delivers alerts to the department operator and to subject-specific
// human agents over the same outbound client.
type Notifier struct {
	client *Client
	bot    config.BotConfig
}

func NewNotifier(client *Client, bot config.BotConfig) *Notifier {
	return &Notifier{client: client, bot: bot}
}

func (n *Notifier) NotifyOperator(ctx context.Context, message string) error {
	return n.client.SendText(ctx, n.bot.OperatorNumber, message)
}

// NotifyHandoff alerts the human agent responsible for the subject that a
// user is waiting for contact.
func (n *Notifier) NotifyHandoff(ctx context.Context, subject, userNumber string) error {
	agent, ok := n.bot.HumanAgents[subject]
	if !ok || agent == "" {
		agent = n.bot.OperatorNumber
	}
	msg := fmt.Sprintf("👋 *Nova solicitação de conversa* sobre *%s*.\nUsuário: +%s\nPor favor, entre em contato.", subject, userNumber)
	return n.client.SendText(ctx, agent, msg)
}
