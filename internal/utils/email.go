package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"evcharge_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

// SendNotificationEmail envoie un email HTML, avec pièce jointe PNG
// optionnelle (QR code de check-in)
func SendNotificationEmail(to, subject, htmlBody string, qrAttachment []byte) error {
	msg := mail.NewMsg()

	if err := msg.From("noreply@evcharge.app"); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if qrAttachment != nil {
		msg.AttachReader("checkin_qr.png", bytes.NewReader(qrAttachment))
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// GenerateBookingConfirmationHTML génère le HTML de confirmation de réservation
func GenerateBookingConfirmationHTML(booking models.Booking, station models.Station) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Réservation confirmée</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Votre réservation est confirmée ⚡</h2>
		<p>Bonjour,</p>
		<p>Votre créneau de recharge est réservé :</p>
		<table style="width: 100%%; border-collapse: collapse;">
			<tr><td><b>Borne</b></td><td>%s</td></tr>
			<tr><td><b>Adresse</b></td><td>%s, %s</td></tr>
			<tr><td><b>Début</b></td><td>%s</td></tr>
			<tr><td><b>Durée</b></td><td>%d h</td></tr>
			<tr><td><b>Montant</b></td><td>%.2f€</td></tr>
		</table>
		<p>Présentez le QR code en pièce jointe à la borne pour démarrer la charge.</p>
		<p style="color: #888; font-size: 12px;">Référence : %s</p>
	</div>
</body>
</html>`,
		station.Name, station.Address, station.City,
		booking.StartTime.Format("02/01/2006 15:04"), booking.Hours, booking.Amount,
		booking.ID.String())
}

// GenerateStationDecisionHTML génère le HTML de notification d'approbation
// ou de rejet d'une borne pour son propriétaire
func GenerateStationDecisionHTML(station models.Station, approved bool) string {
	decision := "rejetée ❌"
	detail := "Vous pouvez corriger votre dossier et soumettre une nouvelle demande."
	if approved {
		decision = "approuvée ✅"
		detail = "Elle est maintenant visible sur la marketplace et ouverte aux réservations."
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>Décision borne</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Votre borne "%s" a été %s</h2>
		<p>%s</p>
	</div>
</body>
</html>`, station.Name, decision, detail)
}
