package calculation

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/lexcase/interest-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var civilZero civil.Date

func day(y int, m time.Month, d int) civil.Date { return dateutil.MustDate(y, m, d) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}
