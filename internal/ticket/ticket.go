// Package ticket renders the downloadable boarding-pass PDF: one
// landscape page per passenger with an embedded QR code.
package ticket

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/flyhigh-team/flyhigh-web/internal/models"
)

// Page size in points, landscape.
const (
	pageWidth  = 450
	pageHeight = 280
)

// QRPayload encodes the pipe-delimited boarding data scanned at the
// gate: flight, airline, passenger, route, seat.
func QRPayload(flight models.Flight, p models.Passenger) string {
	return fmt.Sprintf("%d|%s|%s|%s>%s|%s",
		flight.ID, flight.AirlineName, p.FullName(),
		flight.DepartureCity, flight.ArrivalCity, p.SeatNumber)
}

// Generate produces one PDF with a boarding pass per passenger.
// Gate and ticket-number values are simulated: no gate assignment
// exists upstream, so these must not be treated as real operational
// data.
func Generate(flight models.Flight, passengers []models.Passenger) ([]byte, error) {
	pdf, err := buildDocument(flight, passengers)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ticket pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename names the download after the flight.
func Filename(flight models.Flight) string {
	return fmt.Sprintf("tickets-%d.pdf", flight.ID)
}

func buildDocument(flight models.Flight, passengers []models.Passenger) (*gofpdf.Fpdf, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)

	for i, p := range passengers {
		pdf.AddPage()

		png, err := qrcode.Encode(QRPayload(flight, p), qrcode.Medium, 100)
		if err != nil {
			return nil, fmt.Errorf("encode qr for seat %s: %w", p.SeatNumber, err)
		}
		qrName := fmt.Sprintf("qr-%d", i)
		pdf.RegisterImageOptionsReader(qrName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))

		drawBoardingPass(pdf, flight, p, qrName)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("render ticket pdf: %w", pdf.Error())
	}
	return pdf, nil
}

func drawBoardingPass(pdf *gofpdf.Fpdf, flight models.Flight, p models.Passenger, qrName string) {
	// Header band
	pdf.SetFillColor(10, 50, 100)
	pdf.Rect(0, 0, pageWidth, 40, "F")
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(255, 255, 255)
	pdf.Text(20, 25, "BOARDING PASS")
	airline := strings.ToUpper(flight.AirlineName)
	pdf.Text(pageWidth-20-pdf.GetStringWidth(airline), 25, airline)

	const startY = 60
	const middleX = 180

	field := func(x, y float64, label, value string) {
		pdf.SetFont("Helvetica", "", 12)
		pdf.SetTextColor(80, 80, 80)
		pdf.Text(x, y, label)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(x, y+15, value)
	}

	field(20, startY, "PASSENGER NAME", strings.ToUpper(p.FullName()))
	field(20, startY+40, "FROM", strings.ToUpper(flight.DepartureCity))
	field(20, startY+80, "TO", strings.ToUpper(flight.ArrivalCity))
	field(middleX, startY, "DATE", flight.DepartureTime.Format("02/01/2006"))
	field(middleX, startY+40, "FLIGHT", fmt.Sprintf("%d", flight.ID))
	field(middleX, startY+80, "SEAT", p.SeatNumber)

	pdf.ImageOptions(qrName, 330, startY-10, 100, 100, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Tear-off line
	pdf.SetLineWidth(0.5)
	pdf.SetDrawColor(150, 150, 150)
	pdf.SetDashPattern([]float64{5, 5}, 0)
	pdf.Line(20, 200, pageWidth-20, 200)
	pdf.SetDashPattern([]float64{}, 0)

	// Footer band. Gate is made up on the spot: the backend assigns no
	// gates, so this is placeholder data only.
	pdf.SetFillColor(200, 200, 200)
	pdf.Rect(0, 220, pageWidth, 60, "F")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(40, 40, 40)
	pdf.Text(20, 240, "Boarding time: "+flight.DepartureTime.Format("15:04"))
	pdf.Text(20, 255, "Gate: "+randomGate())

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(330, 240, "TICKET NO: "+ticketNumber(flight.ID))
}

func randomGate() string {
	return fmt.Sprintf("%c%d", 'A'+rune(rand.Intn(6)), rand.Intn(30))
}

func ticketNumber(flightID int) string {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return fmt.Sprintf("%d-%s", flightID, suffix)
}
