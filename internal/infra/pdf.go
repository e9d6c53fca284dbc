package infra

// pdf.go: "bon de commande" generation with go-pdf/fpdf.
// One A4 page: header, order and client block, line table, total.
// Written to storagePath/bon_commande_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/EliasMeh/ExamenBDD/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateBonCommandePDF renders the confirmation document of a committed
// order. c must have its Lignes (and their Produit) loaded. Returns the path
// of the written file.
func GenerateBonCommandePDF(c *model.Commande, client *model.Client, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("bon_commande_%d.pdf", c.ID))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Bon de commande", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, tr(fmt.Sprintf("Commande n° %d du %s", c.ID, c.DateCommande.Format("02/01/2006"))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Client ───────────────────────────────────────────────────────────────
	if client != nil {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 6, tr(client.PrenomClient+" "+client.NomClient), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW, 5, tr(client.AdresseClient), "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, 5, client.CodePostalClient, "", 1, "L", false, 0, "")
		pdf.Ln(6)
	}

	// ── Lines ────────────────────────────────────────────────────────────────
	colRef := contentW * 0.46
	colQty := contentW * 0.14
	colPU := contentW * 0.20
	colTot := contentW * 0.20

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(colRef, 7, tr("Référence"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(colQty, 7, tr("Quantité"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(colPU, 7, "Prix unitaire", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colTot, 7, "Montant", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	total := decimal.Zero
	for _, l := range c.Lignes {
		ref := fmt.Sprintf("Produit #%d", l.IDProduit)
		if l.Produit != nil {
			ref = l.Produit.NomReference
		}
		montant := l.Montant()
		total = total.Add(montant)

		pdf.CellFormat(colRef, 6, tr(ref), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, 6, fmt.Sprintf("%d", l.QuantiteCommande), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colPU, 6, l.PrixUnitaire.StringFixed(2)+" EUR", "1", 0, "R", false, 0, "")
		pdf.CellFormat(colTot, 6, montant.StringFixed(2)+" EUR", "1", 1, "R", false, 0, "")
	}

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colRef+colQty+colPU, 8, "TOTAL", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colTot, 8, total.StringFixed(2)+" EUR", "1", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
