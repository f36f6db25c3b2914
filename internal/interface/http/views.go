package handlers

import (
	"time"

	"github.com/oksasatya/gym-backend/internal/domain/entity"
)

// userView is the public shape of a member. Password and reset token never leave the server.
type userView struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Height      float64   `json:"height"`
	Weight      float64   `json:"weight"`
	Age         int       `json:"age"`
	Gender      string    `json:"gender"`
	FitnessGoal string    `json:"fitnessGoal,omitempty"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toUserView(u *entity.User) userView {
	return userView{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Phone:       u.Phone,
		Height:      u.Height,
		Weight:      u.Weight,
		Age:         u.Age,
		Gender:      u.Gender,
		FitnessGoal: u.FitnessGoal,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

type eventView struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Name              string    `json:"name"`
	Date              string    `json:"date"`
	NumOfParticipants int       `json:"numOfParticipants"`
	ModeOfPayment     string    `json:"modeOfPayment"`
	CreatedAt         time.Time `json:"createdAt"`
}

func toEventView(e *entity.Event) eventView {
	return eventView{
		ID:                e.ID,
		Title:             e.Title,
		Name:              e.Name,
		Date:              e.Date,
		NumOfParticipants: e.NumOfParticipants,
		ModeOfPayment:     e.ModeOfPayment,
		CreatedAt:         e.CreatedAt,
	}
}

func toEventViews(in []*entity.Event) []eventView {
	out := make([]eventView, 0, len(in))
	for _, e := range in {
		out = append(out, toEventView(e))
	}
	return out
}

type registrationView struct {
	ID           string    `json:"id"`
	EventID      string    `json:"eventId"`
	EventTitle   string    `json:"eventTitle"`
	UserName     string    `json:"userName"`
	UserEmail    string    `json:"userEmail"`
	RegisteredAt time.Time `json:"registeredAt"`
}

func toRegistrationView(r *entity.Registration) registrationView {
	return registrationView{
		ID:           r.ID,
		EventID:      r.EventID,
		EventTitle:   r.EventTitle,
		UserName:     r.UserName,
		UserEmail:    r.UserEmail,
		RegisteredAt: r.RegisteredAt,
	}
}

type feedbackView struct {
	ID          string    `json:"id"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type contactView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submittedAt"`
}
