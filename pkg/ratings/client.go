package ratings

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"bookcatalog/pkg/circuitbreaker"
	"bookcatalog/pkg/models"
)

// Client talks to the ratings service for a single base address.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		breaker: circuitbreaker.New(5, 30*time.Second),
	}
}

// FetchAggregate returns the rating aggregate for a book. It never fails:
// a 404 from the service means the book has no ratings yet and yields the
// default aggregate silently; any other failure is logged and yields the
// same default, so a ratings outage cannot take down book browsing.
func (c *Client) FetchAggregate(bookID uint) models.RatingAggregate {
	aggregate := models.DefaultAggregate()

	err := c.breaker.Execute(func() error {
		response, err := c.httpClient.Get(fmt.Sprintf("%s/ratings/%d", c.baseURL, bookID))
		if err != nil {
			return err
		}
		defer response.Body.Close()

		if response.StatusCode == http.StatusNotFound {
			// No ratings for this book yet, not a fault.
			return nil
		}
		if response.StatusCode != http.StatusOK {
			return fmt.Errorf("ratings service returned status %d", response.StatusCode)
		}

		var decoded models.RatingAggregate
		if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
			return fmt.Errorf("failed to decode ratings response: %w", err)
		}
		if decoded.Ratings == nil {
			decoded.Ratings = []models.RatingEntry{}
		}
		aggregate = decoded
		return nil
	}, func() error {
		return circuitbreaker.ErrOpen
	})

	if err != nil {
		log.Printf("Error fetching ratings for book %d: %v", bookID, err)
		return models.DefaultAggregate()
	}
	return aggregate
}

// SubmitRating forwards a user's rating to the ratings service. The value
// and email are passed along verbatim; the service enforces its own rules.
// Unlike FetchAggregate, failures are reported to the caller so the user
// can be told the submission did not go through.
func (c *Client) SubmitRating(bookID uint, value, email string) error {
	params := url.Values{}
	params.Set("value", value)
	params.Set("email", email)

	requestURL := fmt.Sprintf("%s/ratings/%d?%s", c.baseURL, bookID, params.Encode())
	response, err := c.httpClient.Post(requestURL, "application/json", nil)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("ratings service returned status %d", response.StatusCode)
	}
	return nil
}
