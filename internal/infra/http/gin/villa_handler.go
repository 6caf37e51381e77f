package ginserver

import (
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	"villastay/internal/app/dto"
	villaservice "villastay/internal/app/services/villa"
	domainvilla "villastay/internal/domain/villa"
)

type VillaHandler struct {
	Villas *villaservice.Service
}

func (h VillaHandler) Catalog(c *gin.Context) {
	params := villaservice.FilterParams{
		Location: c.Query("location"),
		Bedrooms: queryInt(c, "bedrooms"),
		MinPrice: int64(queryInt(c, "min_price")),
		MaxPrice: int64(queryInt(c, "max_price")),
	}
	villas, err := h.Villas.Filter(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load villas"})
		return
	}
	c.JSON(http.StatusOK, dto.MapVillaCollection(villas))
}

func (h VillaHandler) Featured(c *gin.Context) {
	villas, err := h.Villas.Featured(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load villas"})
		return
	}
	c.JSON(http.StatusOK, dto.MapVillaCollection(villas))
}

func (h VillaHandler) Trending(c *gin.Context) {
	villas, err := h.Villas.Trending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load villas"})
		return
	}
	c.JSON(http.StatusOK, dto.MapVillaCollection(villas))
}

func (h VillaHandler) Get(c *gin.Context) {
	v, err := h.Villas.ByID(c.Request.Context(), domainvilla.ID(c.Param("id")))
	if err != nil {
		respondVillaError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapVillaSummary(v))
}

func queryInt(c *gin.Context, name string) int {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

var _ VillaHTTP = VillaHandler{}
