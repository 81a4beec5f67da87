// pkg/email/email.go
package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"
)

type EmailService struct {
	apiKey    string
	from      string
	templates *template.Template
}

type EmailData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

type ExpiryWarningData struct {
	ResellerName  string
	CustomerEmail string
	ProfileName   string
	DaysLeft      int
	ExpiryDate    time.Time
}

type RenewalConfirmationData struct {
	ResellerName  string
	CustomerEmail string
	Months        int
	StartDate     time.Time
	EndDate       time.Time
}

type SubmissionDecisionData struct {
	ResellerName  string
	CustomerEmail string
	PlanID        string
	Status        string
	Approved      bool
}

func NewEmailService(apiKey, from string) (*EmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %v", err)
	}

	return &EmailService{
		apiKey:    apiKey,
		from:      from,
		templates: templates,
	}, nil
}

func (s *EmailService) sendTemplateEmail(to, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %v", err)
	}

	emailData := EmailData{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    body.String(),
	}

	jsonData, err := json.Marshal(emailData)
	if err != nil {
		return fmt.Errorf("error marshaling email data: %v", err)
	}

	req, err := http.NewRequest("POST", "https://api.resend.com/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("Resend API error: Status: %d, Body: %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("resend API error: %s", string(respBody))
	}

	return nil
}

func (s *EmailService) SendExpiryWarning(resellerEmail, resellerName, customerEmail, profileName string, daysLeft int, expiryDate time.Time) error {
	data := ExpiryWarningData{
		ResellerName:  resellerName,
		CustomerEmail: customerEmail,
		ProfileName:   profileName,
		DaysLeft:      daysLeft,
		ExpiryDate:    expiryDate,
	}
	subject := fmt.Sprintf("Subscription for %s expires in %d day(s)", customerEmail, daysLeft)
	return s.sendTemplateEmail(resellerEmail, subject, "expiry_warning.html", data)
}

func (s *EmailService) SendRenewalConfirmation(resellerEmail, resellerName, customerEmail string, months int, startDate, endDate time.Time) error {
	data := RenewalConfirmationData{
		ResellerName:  resellerName,
		CustomerEmail: customerEmail,
		Months:        months,
		StartDate:     startDate,
		EndDate:       endDate,
	}
	return s.sendTemplateEmail(resellerEmail, "Subscription renewed", "renewal_confirmation.html", data)
}

func (s *EmailService) SendSubmissionDecision(resellerEmail, resellerName, customerEmail, planID, status string, approved bool) error {
	data := SubmissionDecisionData{
		ResellerName:  resellerName,
		CustomerEmail: customerEmail,
		PlanID:        planID,
		Status:        status,
		Approved:      approved,
	}
	subject := fmt.Sprintf("Submission for %s: %s", customerEmail, status)
	return s.sendTemplateEmail(resellerEmail, subject, "submission_decision.html", data)
}
