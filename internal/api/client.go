package api

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kebabkartan/backend/config"
	"github.com/kebabkartan/backend/internal/consent"
	"github.com/kebabkartan/backend/internal/service"
	"github.com/kebabkartan/backend/internal/types"
)

// ClientHandler serves the browser-facing support endpoints: IP
// geolocation for the initial map view, the consent cookie, and the
// consent-gated client configuration.
type ClientHandler struct {
	geoService *service.GeoIPService
	cfg        *config.Config
}

func NewClientHandler(geoService *service.GeoIPService, cfg *config.Config) *ClientHandler {
	return &ClientHandler{
		geoService: geoService,
		cfg:        cfg,
	}
}

func (h *ClientHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/geolocate", h.Geolocate)
	router.GET("/client-config", h.ClientConfig)
	router.PUT("/consent", h.SaveConsent)
}

// Geolocate suggests an initial map viewport from the caller's IP. Always
// 200: failures degrade to the country-wide default view.
func (h *ClientHandler) Geolocate(c *gin.Context) {
	ip := c.ClientIP()
	if parsed := net.ParseIP(ip); parsed == nil || parsed.IsLoopback() || parsed.IsPrivate() {
		c.JSON(http.StatusOK, service.DefaultView())
		return
	}
	c.JSON(http.StatusOK, h.geoService.Lookup(c.Request.Context(), ip))
}

// ClientConfig returns third-party configuration the client may load. The
// analytics measurement id is only handed out when the consent cookie
// grants analytics.
func (h *ClientHandler) ClientConfig(c *gin.Context) {
	prefs := consent.FromRequest(c)

	resp := types.ClientConfigResponse{
		MarketingEnabled: prefs.Marketing,
	}
	if prefs.Analytics {
		resp.AnalyticsMeasurementID = h.cfg.AnalyticsMeasurementID
	}
	c.JSON(http.StatusOK, resp)
}

// SaveConsent stores the banner choice in the consent cookie.
func (h *ClientHandler) SaveConsent(c *gin.Context) {
	var prefs consent.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	consent.Write(c, prefs)
	prefs.Necessary = true
	c.JSON(http.StatusOK, prefs)
}
