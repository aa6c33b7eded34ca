package handlers

import (
	"context"

	"github.com/gdg-garage/event-registration-api/internal/models"
	"github.com/gdg-garage/event-registration-api/internal/registration"
	"go.uber.org/zap"
)

type RegistrationHandler struct {
	service *registration.Service
	logger  *zap.Logger
}

func NewRegistrationHandler(service *registration.Service, logger *zap.Logger) *RegistrationHandler {
	return &RegistrationHandler{service: service, logger: logger}
}

type MemberInput struct {
	Name       string `json:"name,omitempty" doc:"Member name"`
	RollNumber string `json:"rollNumber,omitempty" doc:"Member roll number"`
	Phone      string `json:"phone,omitempty" doc:"Member phone number"`
}

type RegistrationRequest struct {
	Body struct {
		_          struct{}      `json:"-" additionalProperties:"true"`
		EventID    string        `json:"eventId,omitempty" doc:"Event identifier"`
		Name       string        `json:"name,omitempty" doc:"Participant name (solo events)"`
		Email      string        `json:"email,omitempty" doc:"Contact email"`
		Phone      string        `json:"phone,omitempty" doc:"Phone number; comma-separated per member for team events"`
		RollNumber string        `json:"rollNumber,omitempty" doc:"Roll number; comma-separated per member for team events"`
		TeamID     string        `json:"teamId,omitempty" doc:"Team identifier (team events)"`
		MemberName string        `json:"memberName,omitempty" doc:"Comma-separated member names (team events)"`
		Members    []MemberInput `json:"members,omitempty" doc:"Team members; takes precedence over the comma-separated fields"`
	}
}

type RegistrationResponse struct {
	Body struct {
		Message      string `json:"message"`
		WhatsappLink string `json:"whatsappLink,omitempty"`
	}
}

func (h *RegistrationHandler) HandleRegister(ctx context.Context, input *RegistrationRequest) (*RegistrationResponse, error) {
	sub := registration.Submission{
		EventID:    input.Body.EventID,
		Name:       input.Body.Name,
		Email:      input.Body.Email,
		Phone:      input.Body.Phone,
		RollNumber: input.Body.RollNumber,
		TeamID:     input.Body.TeamID,
		MemberName: input.Body.MemberName,
	}
	for _, m := range input.Body.Members {
		sub.Members = append(sub.Members, models.Member{Name: m.Name, RollNumber: m.RollNumber, Phone: m.Phone})
	}

	result, err := h.service.Submit(ctx, sub)
	if err != nil {
		h.logger.Info("registration rejected", zap.String("event", sub.EventID), zap.Error(err))
		return nil, httpError(err)
	}

	res := &RegistrationResponse{}
	res.Body.Message = result.Message
	res.Body.WhatsappLink = result.CommunicationLink
	return res, nil
}
