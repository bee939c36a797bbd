package controller

import (
	"net/http"

	"github.com/alimikegami/point-of-sales/payment-service/internal/dto"
	"github.com/alimikegami/point-of-sales/payment-service/internal/service"
	"github.com/alimikegami/point-of-sales/payment-service/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type PaymentController struct {
	service service.PaymentService
}

func CreatePaymentController(g *echo.Group, service service.PaymentService) {
	c := PaymentController{
		service: service,
	}

	g.POST("/payments/details", c.GetPaymentDetails)
	g.GET("/payments/proxy", c.ProxyAsset)
}

func (c *PaymentController) GetPaymentDetails(e echo.Context) error {
	payload := dto.PaymentDetailsRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "GetPaymentDetails").Msg("")
	}

	resp, err := c.service.GetPaymentDetails(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return e.JSONBlob(http.StatusOK, resp)
}

func (c *PaymentController) ProxyAsset(e echo.Context) error {
	resp, err := c.service.ProxyAsset(e.Request().Context(), e.QueryParam("url"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	contentType := resp.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}

	return e.Blob(resp.StatusCode, contentType, resp.Body)
}
