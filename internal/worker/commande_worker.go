package worker

// commande_worker.go
// Confirms committed orders: renders the bon de commande PDF and mails it to
// the client through the circuit breaker.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/EliasMeh/ExamenBDD/internal/infra"
	"github.com/EliasMeh/ExamenBDD/internal/repository"

	"github.com/rs/zerolog/log"
)

type CommandeConfirmeePayload struct {
	IDCommande int64 `json:"idcommande"`
}

// MailSender is satisfied by *infra.Mailer.
type MailSender interface {
	SendWithAttachment(to, subject, body, attachmentPath string) error
}

type ConfirmationWorker struct {
	commandes repository.CommandeRepository
	clients   repository.ClientRepository
	mailer    MailSender
	cb        *infra.CircuitBreaker
	pdfDir    string
}

func NewConfirmationWorker(
	commandes repository.CommandeRepository,
	clients repository.ClientRepository,
	mailer MailSender,
	cb *infra.CircuitBreaker,
	pdfDir string,
) *ConfirmationWorker {
	return &ConfirmationWorker{commandes: commandes, clients: clients, mailer: mailer, cb: cb, pdfDir: pdfDir}
}

// Process is the Handler for JobCommandeConfirmee.
func (w *ConfirmationWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload CommandeConfirmeePayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.IDCommande <= 0 {
		return fmt.Errorf("%w: invalid payload %s", ErrPermanent, string(raw))
	}

	c, err := w.commandes.FindWithLignes(ctx, payload.IDCommande)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: commande %d no longer exists", ErrPermanent, payload.IDCommande)
	}
	if err != nil {
		return fmt.Errorf("load commande %d: %w", payload.IDCommande, err)
	}

	client, err := w.clients.FindByID(ctx, c.IDClient)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: client %d no longer exists", ErrPermanent, c.IDClient)
	}
	if err != nil {
		return fmt.Errorf("load client %d: %w", c.IDClient, err)
	}
	if client.EmailClient == "" {
		log.Warn().Int64("idcommande", c.ID).Msg("confirmation: client has no email, skipping")
		return nil
	}

	// Nothing is rendered while the relay is known to be down.
	if w.cb.State() == infra.CBOpen {
		return fmt.Errorf("send confirmation for commande %d: %w", c.ID, infra.ErrCircuitOpen)
	}

	pdfPath, err := infra.GenerateBonCommandePDF(c, client, w.pdfDir)
	if err != nil {
		return err
	}
	// The document only lives for the send; a retry renders it again.
	defer func() {
		if err := os.Remove(pdfPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", pdfPath).Msg("confirmation: could not remove bon de commande")
		}
	}()

	subject := fmt.Sprintf("Confirmation de votre commande n° %d", c.ID)
	body := fmt.Sprintf("Bonjour %s %s,\n\nVotre commande n° %d du %s a bien été enregistrée.\nVous trouverez le bon de commande en pièce jointe.\n",
		client.PrenomClient, client.NomClient, c.ID, c.DateCommande.Format("02/01/2006"))

	err = w.cb.Execute(func() error {
		return w.mailer.SendWithAttachment(client.EmailClient, subject, body, pdfPath)
	})
	if err != nil {
		return fmt.Errorf("send confirmation for commande %d: %w", c.ID, err)
	}

	log.Info().Int64("idcommande", c.ID).Str("to", client.EmailClient).Msg("confirmation: bon de commande sent")
	return nil
}
