package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"
)

// GenerateBookingQR génère le QR de check-in d'une réservation en PNG.
// La borne scanne ce code pour démarrer la session de charge
func GenerateBookingQR(bookingID string) ([]byte, error) {
	return qrcode.Encode("evcharge://checkin/"+bookingID, qrcode.Medium, 256)
}

// QRBase64 encode un PNG en data-URI prêt à mettre dans <img src="...">
func QRBase64(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

// RenderBookingReceiptPDF charge la page de reçu du frontend et l'imprime
// en PDF via Chrome headless.
// frontendURL doit ressembler à: http://localhost:5173/receipt
func RenderBookingReceiptPDF(frontendURL, bookingID, qrBase64 string) ([]byte, error) {
	// on passe les params en query
	q := url.Values{}
	q.Set("id", bookingID)
	q.Set("qr", qrBase64)

	fullURL := fmt.Sprintf("%s?%s", frontendURL, q.Encode())

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// timeout pour éviter de bloquer
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte

	err := chromedp.Run(ctx,
		chromedp.Navigate(fullURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}
