package crm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dghubble/sling"
)

const (
	apiPath = "services/data/v59.0/"

	locationObject   = "Location"
	detailObject     = "Event__c"
	fingerprintField = "Fingerprint__c"
	summaryField     = "Events_Summary__c"
	lastUpdateField  = "Last_Events_Update__c"
)

// RESTClient talks to the external system's REST API.
type RESTClient struct {
	base *sling.Sling
}

// NewRESTClient creates a client for the API at baseURL authenticated with
// a bearer token. The timeout bounds each individual call.
func NewRESTClient(baseURL, token string, timeout time.Duration) *RESTClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}

	base := sling.New().
		Client(httpClient).
		Base(ensureSlash(baseURL)).
		Set("Authorization", "Bearer "+token).
		Set("Content-Type", "application/json")

	return &RESTClient{base: base}
}

// apiError is the error body the external API returns.
type apiError struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
}

type apiErrors []apiError

func (e apiErrors) message() string {
	if len(e) == 0 {
		return "unknown error"
	}
	return fmt.Sprintf("%s: %s", e[0].ErrorCode, e[0].Message)
}

type queryParams struct {
	Q string `url:"q"`
}

type queryResponse struct {
	TotalSize int        `json:"totalSize"`
	Records   []Location `json:"records"`
}

// FindLocation resolves a location record by exact name.
func (c *RESTClient) FindLocation(ctx context.Context, name string) (*Location, error) {
	const op = "find location"

	params := queryParams{
		Q: fmt.Sprintf("SELECT Id, Name FROM %s WHERE Name = '%s'", locationObject, escapeSOQL(name)),
	}

	var success queryResponse
	var failure apiErrors
	req, err := c.base.New().
		Get(apiPath+"query").
		QueryStruct(params).
		Request()
	if err != nil {
		return nil, fmt.Errorf("%s: building request: %w", op, err)
	}

	httpResp, doErr := c.base.Do(req.WithContext(ctx), &success, &failure)
	if httpResp == nil {
		return nil, &TransientError{Op: op, Err: doErr}
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, classify(op, httpResp.StatusCode, failure)
	}
	if doErr != nil {
		return nil, fmt.Errorf("%s: decoding response: %w", op, doErr)
	}
	if len(success.Records) == 0 {
		return nil, nil
	}

	return &success.Records[0], nil
}

// UpsertDetailRecords writes each record via fingerprint-keyed upsert, so
// repeated syncs of the same canonical set rewrite rather than duplicate.
// A 404 on the detail object path means the org's schema does not include
// it, reported as *SchemaError.
func (c *RESTClient) UpsertDetailRecords(ctx context.Context, locationID string, records []DetailRecord) error {
	const op = "upsert detail records"

	for _, rec := range records {
		body := map[string]string{
			"Name":           rec.Name,
			"Event_Date__c":  rec.Date,
			"Description__c": rec.Description,
			"Venue__c":       rec.Venue,
			"Category__c":    rec.Category,
			"Event_URL__c":   rec.URL,
			"Source__c":      rec.Source,
			"Location__c":    locationID,
		}

		path := fmt.Sprintf("%ssobjects/%s/%s/%s", apiPath, detailObject, fingerprintField, rec.Fingerprint)

		var failure apiErrors
		req, err := c.base.New().Patch(path).BodyJSON(body).Request()
		if err != nil {
			return fmt.Errorf("%s: building request: %w", op, err)
		}

		httpResp, doErr := c.base.Do(req.WithContext(ctx), nil, &failure)
		if httpResp == nil {
			return &TransientError{Op: op, Err: doErr}
		}

		switch {
		case httpResp.StatusCode >= 200 && httpResp.StatusCode < 300:
			continue
		case httpResp.StatusCode == http.StatusNotFound:
			return &SchemaError{Object: detailObject, Status: httpResp.StatusCode}
		default:
			return classify(op, httpResp.StatusCode, failure)
		}
	}

	return nil
}

// UpdateSummaryField writes the summary digest and timestamp onto the
// location record.
func (c *RESTClient) UpdateSummaryField(ctx context.Context, locationID, summaryJSON string, updatedAt time.Time) error {
	const op = "update summary field"

	body := map[string]string{
		summaryField:    summaryJSON,
		lastUpdateField: updatedAt.UTC().Format("2006-01-02"),
	}

	path := fmt.Sprintf("%ssobjects/%s/%s", apiPath, locationObject, locationID)

	var failure apiErrors
	req, err := c.base.New().Patch(path).BodyJSON(body).Request()
	if err != nil {
		return fmt.Errorf("%s: building request: %w", op, err)
	}

	httpResp, doErr := c.base.Do(req.WithContext(ctx), nil, &failure)
	if httpResp == nil {
		return &TransientError{Op: op, Err: doErr}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return classify(op, httpResp.StatusCode, failure)
	}

	return nil
}

// classify maps a non-success status onto the error taxonomy: 429 and 5xx
// are transient, everything else is permanent.
func classify(op string, status int, failure apiErrors) error {
	if status == http.StatusTooManyRequests || status >= 500 {
		return &TransientError{Op: op, Status: status, Err: fmt.Errorf("%s", failure.message())}
	}
	return fmt.Errorf("%s: API error (status %d): %s", op, status, failure.message())
}

// escapeSOQL escapes single quotes and backslashes in a query literal.
func escapeSOQL(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\'' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

func ensureSlash(s string) string {
	if s == "" || s[len(s)-1] == '/' {
		return s
	}
	return s + "/"
}
