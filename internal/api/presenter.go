package api

import (
	"encoding/xml"

	models "github.com/chrisdamba/babysitter/internal"
	"github.com/chrisdamba/babysitter/internal/policy"
)

type StatusesResponse struct {
	XMLName  xml.Name            `json:"-" xml:"statuses"`
	Statuses []models.StatusInfo `json:"statuses" xml:"status"`
}

func (h *Handler) bookingResponse(b *models.Booking) models.BookingResponse {
	info, _ := h.catalog.Lookup(b.Status)
	res := models.BookingResponse{
		ID:                 b.ID,
		BookingNumber:      b.BookingNumber,
		Name:               b.Name,
		Email:              b.Email,
		Phone:              b.Phone,
		Address:            b.Address,
		City:               b.City,
		State:              b.State,
		ZipCode:            b.ZipCode,
		StartDatetime:      b.StartDatetime,
		EndDatetime:        b.EndDatetime,
		Message:            b.Message,
		CareRecipientCount: b.CareRecipientCount,
		Status:             b.Status,
		StatusLabel:        info.Label,
		StatusColor:        info.Color,
		RequesterID:        b.RequesterID,
		HandlerID:          b.HandlerID,
		CareRecipients:     make([]models.CareRecipientResponse, len(b.CareRecipients)),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
	for i := range b.CareRecipients {
		res.CareRecipients[i] = h.careRecipientResponse(&b.CareRecipients[i])
	}
	return res
}

func (h *Handler) careRecipientResponse(r *models.CareRecipient) models.CareRecipientResponse {
	now := h.clock.Now()
	res := models.CareRecipientResponse{
		ID:        r.ID,
		Name:      r.Name,
		Age:       policy.AgeDisplay(now, r.DateOfBirth),
		Remarks:   r.Remarks,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if !r.DateOfBirth.IsZero() {
		res.DateOfBirth = r.DateOfBirth.Format(models.DateFormat)
		res.AgeYears = policy.AgeYears(now, r.DateOfBirth)
		res.AgeMonths = policy.AgeMonths(now, r.DateOfBirth)
	}
	return res
}
