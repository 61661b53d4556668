package services

import (
	"context"
	"encoding/base64"
	"html/template"
	"io"
	"strings"
	"time"

	"chainsaw-registry/internal/dto"
	"chainsaw-registry/internal/repositories"
	"chainsaw-registry/pkg/qrcode"
	"chainsaw-registry/pkg/types"

	"go.uber.org/zap"
)

var printSheetTemplate = template.Must(template.New("qr-print").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Chainsaw Registration QR Codes</title>
<style>
body { font-family: sans-serif; margin: 16px; }
.grid { display: flex; flex-wrap: wrap; gap: 16px; }
.card { border: 1px solid #08933D; border-radius: 8px; padding: 12px; width: {{.Width}}px; text-align: center; page-break-inside: avoid; }
.card img { width: {{.Width}}px; height: {{.Width}}px; }
.meta { font-size: 12px; color: #333; margin-top: 6px; }
.status { font-weight: bold; }
@media print { body { margin: 0; } }
</style>
</head>
<body onload="window.print()">
<div class="grid">
{{range .Cards}}<div class="card">
<img src="data:image/png;base64,{{.Image}}" alt="QR code for {{.SerialNumber}}">
<div class="meta"><strong>{{.Brand}} {{.Model}}</strong></div>
<div class="meta">S/N {{.SerialNumber}}</div>
{{if .Owner}}<div class="meta">{{.Owner}}</div>{{end}}
<div class="meta status">{{.Status}} until {{.ValidUntil}}</div>
</div>
{{end}}</div>
</body>
</html>
`))

type qrCard struct {
	Image        template.URL
	Brand        string
	Model        string
	SerialNumber string
	Owner        string
	Status       string
	ValidUntil   string
}

type QRService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	generator     *qrcode.Generator
	publicBaseURL string
	logger        *zap.Logger
	now           func() time.Time
}

func NewQRService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	generator *qrcode.Generator,
	publicBaseURL string,
	logger *zap.Logger,
) *QRService {
	return &QRService{
		equipmentRepo: equipmentRepo,
		generator:     generator,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
		now:           time.Now,
	}
}

// EquipmentURL is the public page a printed code points to.
func (s *QRService) EquipmentURL(id string) string {
	return s.publicBaseURL + "/equipments/" + id
}

// EquipmentQR renders the code for an existing record.
func (s *QRService) EquipmentQR(ctx context.Context, id string, size int) ([]byte, error) {
	if _, err := s.equipmentRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.generator.PNG(s.EquipmentURL(id), size)
}

// PrintSheet writes a printable HTML page with one card per found id.
// Unknown ids are skipped.
func (s *QRService) PrintSheet(ctx context.Context, w io.Writer, ids []string, size int) error {
	list, err := s.equipmentRepo.ListByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("PrintSheet: failed to load equipments", zap.Strings("ids", ids), zap.Error(err))
		return err
	}
	if size <= 0 {
		size = 180
	}

	cards := make([]qrCard, 0, len(list))
	for _, d := range dto.NewEquipmentDTOs(list, s.now()) {
		raw, err := s.generator.PNG(s.EquipmentURL(d.ID), size)
		if err != nil {
			return err
		}
		owner := strings.TrimSpace(strings.Join([]string{d.OwnerFirstName.String, d.OwnerLastName.String}, " "))
		cards = append(cards, qrCard{
			Image:        template.URL(base64.StdEncoding.EncodeToString(raw)),
			Brand:        d.Brand,
			Model:        d.Model,
			SerialNumber: d.SerialNumber,
			Owner:        owner,
			Status:       string(d.Status),
			ValidUntil:   d.ValidUntil.Format(types.DateLayout),
		})
	}

	return printSheetTemplate.Execute(w, struct {
		Width int
		Cards []qrCard
	}{Width: size, Cards: cards})
}
