package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/aiclases-pricing/internal/dto"
	"github.com/anyulbade/aiclases-pricing/internal/service"
)

type PricingHandler struct {
	svc *service.PricingService
}

func NewPricingHandler(svc *service.PricingService) *PricingHandler {
	return &PricingHandler{svc: svc}
}

func requestSignals(c *gin.Context) service.Signals {
	return service.Signals{
		Country:        c.Query("country"),
		AcceptLanguage: c.GetHeader("Accept-Language"),
		UserAgent:      c.GetHeader("User-Agent"),
	}
}

// GetCountries serves the full pricing view for the caller's region.
func (h *PricingHandler) GetCountries(c *gin.Context) {
	q := h.svc.Quote(requestSignals(c))

	c.JSON(http.StatusOK, dto.CountriesResponse{
		Region:           q.Region,
		DetectedRegion:   q.Detected.Region.ID,
		DetectionSource:  string(q.Source),
		Locale:           q.Locale,
		Packages:         q.Packages,
		AvailableRegions: dto.NewRegionSummaries(h.svc.Regions()),
		SpecialOffers:    dto.NewSpecialOffers(q.SpecialOffers),
		PaymentMethods:   q.PaymentMethods,
	})
}

func (h *PricingHandler) GetPackages(c *gin.Context) {
	res := h.svc.Resolve(requestSignals(c))

	c.JSON(http.StatusOK, dto.PackagesResponse{
		Region:          res.Region,
		DetectionSource: string(res.Source),
		Packages:        h.svc.Packages(res.Region),
	})
}

func (h *PricingHandler) GetRegions(c *gin.Context) {
	c.JSON(http.StatusOK, dto.RegionsResponse{
		Default: h.svc.DefaultRegion().ID,
		Regions: dto.NewRegionSummaries(h.svc.Regions()),
	})
}

func (h *PricingHandler) GetCourses(c *gin.Context) {
	var q dto.CourseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	courses := h.svc.Courses(q.Level, q.Category)
	c.JSON(http.StatusOK, dto.CoursesResponse{Courses: courses, Total: len(courses)})
}
