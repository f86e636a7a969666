package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hxuan190/fairsplit/internal/http/httputil"
	"github.com/hxuan190/fairsplit/internal/services/splitter"
)

type CurrencyHandler struct {
	defaultCurrency string
}

func NewCurrencyHandler(defaultCurrency string) *CurrencyHandler {
	return &CurrencyHandler{defaultCurrency: defaultCurrency}
}

func (h *CurrencyHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.GET("", h.listCurrencies)
	pub.GET("/:code", h.getCurrency)
}

func (h *CurrencyHandler) Root() string {
	return "/currencies"
}

type CurrencyListResponse struct {
	Currencies []splitter.CurrencyInfo `json:"currencies"`

	// Currency applied to requests that do not name one
	Default string `json:"default" example:"USD"`
}

type CurrencyResponse struct {
	splitter.CurrencyInfo

	// False when the code is not in the precision table and the default precision applies
	Known bool `json:"known" example:"true"`
}

// @Summary List currency precisions
// @Description Lists the currencies with an explicit minor unit precision. Any other code uses 2 decimals.
// @Tags currencies
// @Produce json
// @Success 200 {object} httputil.Response{data=CurrencyListResponse}
// @Router /api/v1/currencies [get]
func (h *CurrencyHandler) listCurrencies(c *gin.Context) {
	httputil.Success(c, CurrencyListResponse{
		Currencies: splitter.Currencies(),
		Default:    h.defaultCurrency,
	})
}

// @Summary Get a currency precision
// @Tags currencies
// @Produce json
// @Param code path string true "ISO 4217 style code" example("JPY")
// @Success 200 {object} httputil.Response{data=CurrencyResponse}
// @Failure 400 {object} httputil.Response "Code is not three letters"
// @Router /api/v1/currencies/{code} [get]
func (h *CurrencyHandler) getCurrency(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	if len(code) != 3 {
		httputil.BadRequest(c, "currency code must have 3 letters")
		return
	}

	httputil.Success(c, CurrencyResponse{
		CurrencyInfo: splitter.CurrencyInfo{
			Code:        code,
			Precision:   splitter.CurrencyPrecision(code),
			MinimumUnit: splitter.MinimumUnit(code),
		},
		Known: splitter.IsKnownCurrency(code),
	})
}
