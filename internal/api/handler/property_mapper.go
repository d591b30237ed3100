package handler

import (
	"github.com/sharenest/sharenest/internal/core/domain"
	"github.com/sharenest/sharenest/internal/core/ports"
)

// --- Request → Service input ---

func toPropertyInput(req propertyRequest) ports.PropertyInput {
	return ports.PropertyInput{
		Title:       req.Title,
		Description: req.Description,
		Location: ports.LocationInput{
			Address:   req.Location.Address,
			City:      req.Location.City,
			State:     req.Location.State,
			Country:   req.Location.Country,
			ZipCode:   req.Location.ZipCode,
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		},
		PricePerNight: req.PricePerNight,
		Images:        req.Images,
		Amenities:     req.Amenities,
		Type:          req.Type,
		BedroomCount:  req.BedroomCount,
		BathroomCount: req.BathroomCount,
		MaxGuestCount: req.MaxGuestCount,
	}
}

// --- Service result → HTTP response ---

func toPropertyResponse(p *domain.Property) propertyResponse {
	return propertyResponse{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Location:      p.Location,
		PricePerNight: p.PricePerNight,
		Images:        p.Images,
		Amenities:     p.Amenities,
		Type:          string(p.Type),
		BedroomCount:  p.BedroomCount,
		BathroomCount: p.BathroomCount,
		MaxGuestCount: p.MaxGuestCount,
		HostID:        p.HostID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toPropertyDetailResponse(d *ports.PropertyDetail) propertyResponse {
	resp := toPropertyResponse(d.Property)
	resp.Rating = &ratingResponse{Average: d.Rating.Average, Count: d.Rating.Count}
	if d.Host != nil {
		resp.Host = &hostResponse{
			ID:        d.Host.ID,
			FirstName: d.Host.FirstName,
			LastName:  d.Host.LastName,
			Avatar:    d.Host.Avatar,
			Bio:       d.Host.Bio,
		}
	}
	return resp
}

func toListPropertiesResponse(r *ports.ListPropertiesResult) listPropertiesResponse {
	data := make([]propertyResponse, 0, len(r.Items))
	for _, item := range r.Items {
		resp := toPropertyResponse(item.Property)
		resp.Rating = &ratingResponse{Average: item.Rating.Average, Count: item.Rating.Count}
		data = append(data, resp)
	}
	return listPropertiesResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}
