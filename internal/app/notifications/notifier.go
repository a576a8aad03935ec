package notifications

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/TrashMob-eco/adopt-engine/internal/app/models"
	"github.com/TrashMob-eco/adopt-engine/internal/app/repositories"
	"github.com/TrashMob-eco/adopt-engine/internal/pkg/email"
)

// Notifier renders and delivers notification emails for domain events.
// Submission notices go to the area's community administrators; review
// outcomes go to the team's leads. Every failure is logged and swallowed:
// delivery must never convert a committed state transition into an error.
type Notifier struct {
	teamRepo      *repositories.TeamRepository
	communityRepo *repositories.CommunityRepository
	sender        email.Sender
	logger        zerolog.Logger
}

// NewNotifier creates a new Notifier
func NewNotifier(teamRepo *repositories.TeamRepository, communityRepo *repositories.CommunityRepository, sender email.Sender, logger zerolog.Logger) *Notifier {
	return &Notifier{
		teamRepo:      teamRepo,
		communityRepo: communityRepo,
		sender:        sender,
		logger:        logger,
	}
}

// Handle implements Consumer.
func (n *Notifier) Handle(ctx context.Context, event DomainEvent) {
	var recipients []models.User
	var subject, body string
	var err error

	switch event.Kind {
	case EventApplicationSubmitted:
		recipients, err = n.communityRepo.GetAdmins(ctx, event.CommunityID)
		subject = fmt.Sprintf("New adoption application for %s", event.AreaName)
		body = fmt.Sprintf(`
			<html><body>
			<p>Team <strong>%s</strong> has applied to adopt <strong>%s</strong>.</p>
			<p>Please review the application in the adoption dashboard.</p>
			</body></html>`,
			event.TeamName, event.AreaName)

	case EventApplicationApproved:
		recipients, err = n.teamRepo.GetLeads(ctx, event.TeamID)
		subject = fmt.Sprintf("Your adoption of %s was approved", event.AreaName)
		body = fmt.Sprintf(`
			<html><body>
			<p>Congratulations! Your team's application to adopt <strong>%s</strong> has been approved.</p>
			<p>Your maintenance commitment starts today. Remember to log your cleanup events so they count toward your adoption.</p>
			</body></html>`,
			event.AreaName)

	case EventApplicationRejected:
		recipients, err = n.teamRepo.GetLeads(ctx, event.TeamID)
		subject = fmt.Sprintf("Your adoption application for %s was not approved", event.AreaName)
		body = fmt.Sprintf(`
			<html><body>
			<p>Your team's application to adopt <strong>%s</strong> was not approved.</p>
			<p>Reason: %s</p>
			</body></html>`,
			event.AreaName, event.Reason)

	case EventComplianceChanged:
		recipients, err = n.teamRepo.GetLeads(ctx, event.TeamID)
		if event.IsCompliant {
			subject = fmt.Sprintf("Adoption of %s is back in good standing", event.AreaName)
			body = fmt.Sprintf(`
				<html><body>
				<p>Your adoption of <strong>%s</strong> is compliant again. Thank you for keeping it up!</p>
				</body></html>`,
				event.AreaName)
		} else {
			subject = fmt.Sprintf("Adoption of %s needs attention", event.AreaName)
			body = fmt.Sprintf(`
				<html><body>
				<p>Your adoption of <strong>%s</strong> has fallen out of compliance with its cleanup schedule.</p>
				<p>Please schedule a cleanup event soon to keep the adoption in good standing.</p>
				</body></html>`,
				event.AreaName)
		}

	default:
		n.logger.Warn().Str("kind", string(event.Kind)).Msg("Unknown notification event kind")
		return
	}

	if err != nil {
		n.logger.Error().Err(err).Str("kind", string(event.Kind)).Msg("Failed to resolve notification recipients")
		return
	}

	if len(recipients) == 0 {
		n.logger.Debug().Str("kind", string(event.Kind)).Msg("No recipients for notification")
		return
	}

	addresses := make([]string, 0, len(recipients))
	for _, user := range recipients {
		addresses = append(addresses, user.Email)
	}

	if err := n.sender.Send(addresses, subject, body); err != nil {
		n.logger.Error().Err(err).
			Str("kind", string(event.Kind)).
			Int64("adoptionId", event.AdoptionID).
			Msg("Failed to send notification email")
	}
}
