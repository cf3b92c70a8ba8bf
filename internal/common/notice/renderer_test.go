package notice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miblum/go-fund-notice/internal/models"
)

func TestRenderer_Render(t *testing.T) {
	r, err := NewRenderer("Blum <noreply@miblum.com>")
	require.NoError(t, err)

	tests := []struct {
		name        string
		notice      models.Notice
		contains    []string
		notContains []string
		wantErr     bool
	}{
		{
			name: "subscription with bank operation id",
			notice: models.Notice{
				Variant: models.NoticeIndividualBuy,
				Fields: models.NoticeFields{
					models.FieldName:          "Ana",
					models.FieldFundName:      "Blum Cash Soles FMIV",
					models.FieldAmount:        "S/. 50",
					models.FieldTransactionID: "OP-123",
					models.FieldSubject:       "Nueva suscripción Blum: pedido recibido",
					models.FieldEmail:         "ana@mail.com",
				},
			},
			contains: []string{"Hola Ana,", "Blum Cash Soles FMIV", "S/. 50", "OP-123", "Nueva suscripción Blum: pedido recibido", "ana@mail.com", "Blum &lt;noreply@miblum.com&gt;"},
		},
		{
			name: "subscription hides empty operation id",
			notice: models.Notice{
				Variant: models.NoticeBusinessBuy,
				Fields: models.NoticeFields{
					models.FieldName:          "ACME SAC",
					models.FieldTransactionID: "",
				},
			},
			notContains: []string{"N° de operación", "&lt;no value&gt;"},
		},
		{
			name: "business redemption",
			notice: models.Notice{
				Variant: models.NoticeBusinessSell,
				Fields: models.NoticeFields{
					models.FieldName:     "Luis Rojas",
					models.FieldBusiness: "ACME SAC",
					models.FieldSubType:  "Total",
					models.FieldAmount:   models.Placeholder,
					models.FieldShares:   models.Placeholder,
				},
				Classification: models.RedemptionClassification{Full: true},
			},
			contains: []string{"Blum Empresas: Confirmación de rescate", "ACME SAC", "rescate total", "totalidad"},
		},
		{
			name: "escapes customer data",
			notice: models.Notice{
				Variant: models.NoticeIndividualSell,
				Fields:  models.NoticeFields{models.FieldName: "<script>x</script>"},
			},
			contains:    []string{"&lt;script&gt;"},
			notContains: []string{"<script>"},
		},
		{
			name:    "unknown variant",
			notice:  models.Notice{Variant: "other"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render(context.Background(), tt.notice)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestRenderer_Deterministic(t *testing.T) {
	r, err := NewRenderer("Blum <noreply@miblum.com>")
	require.NoError(t, err)

	n := models.Notice{
		Variant: models.NoticeIndividualSell,
		Fields:  models.NoticeFields{models.FieldName: "Ana", models.FieldAmount: "$ 100"},
	}

	first, err := r.Render(context.Background(), n)
	require.NoError(t, err)
	second, err := r.Render(context.Background(), n)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
