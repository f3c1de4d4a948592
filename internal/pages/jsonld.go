package pages

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/910cpr/ew2landers/internal/config"
	"github.com/910cpr/ew2landers/internal/schedule"
)

// ldEvent is the schema.org Event block embedded in session pages.
type ldEvent struct {
	Context   string      `json:"@context"`
	Type      string      `json:"@type"`
	Name      string      `json:"name"`
	StartDate string      `json:"startDate"`
	Location  *ldPlace    `json:"location,omitempty"`
	Offers    *ldOffer    `json:"offers,omitempty"`
	Organizer ldOrganizer `json:"organizer"`
	URL       string      `json:"url,omitempty"`
}

type ldPlace struct {
	Type    string `json:"@type"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

type ldOffer struct {
	Type          string `json:"@type"`
	Price         string `json:"price"`
	PriceCurrency string `json:"priceCurrency"`
	URL           string `json:"url,omitempty"`
}

type ldOrganizer struct {
	Type      string `json:"@type"`
	Name      string `json:"name"`
	URL       string `json:"url,omitempty"`
	Telephone string `json:"telephone,omitempty"`
	Email     string `json:"email,omitempty"`
}

// EventJSONLD renders the structured-data script block for one session.
func EventJSONLD(sess *schedule.Session, org config.Organization) (string, error) {
	ev := ldEvent{
		Context:   "https://schema.org",
		Type:      "Event",
		Name:      sess.CourseTitle,
		StartDate: sess.Start.Format(time.RFC3339),
		URL:       sess.RegistrationURL,
		Organizer: ldOrganizer{
			Type:      "Organization",
			Name:      org.Name,
			URL:       org.URL,
			Telephone: org.Phone,
			Email:     org.Email,
		},
	}
	if sess.CityState != "" {
		ev.Location = &ldPlace{
			Type:    "Place",
			Name:    sess.CityState,
			Address: sess.LocationText,
		}
	}
	if sess.Price != "" {
		ev.Offers = &ldOffer{
			Type:          "Offer",
			Price:         trimDollar(sess.Price),
			PriceCurrency: "USD",
			URL:           sess.RegistrationURL,
		}
	}

	data, err := json.MarshalIndent(ev, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling event data: %w", err)
	}
	return fmt.Sprintf("<script type=\"application/ld+json\">\n%s\n</script>", data), nil
}

func trimDollar(price string) string {
	if len(price) > 0 && price[0] == '$' {
		return price[1:]
	}
	return price
}
