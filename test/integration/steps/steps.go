//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/budget-tracker/insights/internal/integration/adapters"
)

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.server.URL + "/health")
	if err != nil {
		return fmt.Errorf("server is not reachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) iHaveAGuestSession() error {
	if err := t.executeRequest(http.MethodPost, "/api/v1/sessions/guest", nil); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("expected guest session to be created, got %d (body: %v)", t.response.status, t.response.body)
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("unexpected guest session response: %v", t.response.body)
	}
	token, _ := body["token"].(string)
	sessionID, _ := body["session_id"].(string)
	if token == "" || sessionID == "" {
		return fmt.Errorf("guest session response is missing token or session_id: %v", body)
	}

	t.accessToken = token
	t.sessionID = sessionID
	return nil
}

func (t *testContext) iAmSignedInAsUser(userID string) error {
	token, err := t.injector.TokenService.IssueUserToken(userID, userID+"@example.com", time.Hour)
	if err != nil {
		return fmt.Errorf("failed to issue user token: %w", err)
	}
	t.accessToken = token
	t.sessionID = ""
	return nil
}

func (t *testContext) iHaveAnExpiredGuestSession() error {
	past := time.Now().Add(-2 * time.Hour)
	claims := adapters.CustomClaims{
		SessionID:   uuid.New().String(),
		SessionType: "guest",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(past),
			NotBefore: jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		return fmt.Errorf("failed to sign expired token: %w", err)
	}
	t.accessToken = token
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = "" // Clear access token to simulate unauthenticated request
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) theUpstreamEndpointReturns(resource string, content *godog.DocString) error {
	var body any
	if err := json.Unmarshal([]byte(content.Content), &body); err != nil {
		return fmt.Errorf("invalid upstream body for %s: %w", resource, err)
	}
	t.upstream.SetResponse(http.MethodGet, "/"+resource, http.StatusOK, body)
	return nil
}

func (t *testContext) theUpstreamEndpointFailsWithStatus(resource string, status int) error {
	t.upstream.SetResponse(http.MethodGet, "/"+resource, status, map[string]any{"error": "upstream failure"})
	return nil
}

func (t *testContext) theUpstreamEndpointShouldHaveReceivedTheSessionToken(resource string) error {
	headers := t.upstream.GetRequestHeaders(http.MethodGet, "/"+resource, 0)
	if headers == nil {
		return fmt.Errorf("upstream %s was not called", resource)
	}
	if got, want := headers.Get("Authorization"), "Bearer "+t.accessToken; got != want {
		return fmt.Errorf("expected Authorization %q, got %q", want, got)
	}
	return nil
}

func (t *testContext) theUpstreamEndpointShouldHaveBeenCalled(resource string, times int) error {
	if got := t.upstream.RequestCount(http.MethodGet, "/"+resource); got != times {
		return fmt.Errorf("expected upstream %s to be called %d times, got %d", resource, times, got)
	}
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{session_id}}", t.sessionID)
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, t.server.URL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = responseBody
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not an array: %v", field, body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d: %v", field, count, len(items), items)
	}
	return nil
}

func (t *testContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	model, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(model).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	if err := t.db.Database.DB().Find(entitySlicePtr.Interface()).Error; err != nil {
		return err
	}

	if count := entitySlicePtr.Elem().Len(); count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) redisShouldHoldPreferencesForTheGuestSession(quantity int) error {
	if t.sessionID == "" {
		return errors.New("no guest session in this scenario")
	}
	count, err := t.redis.HLen(context.Background(), "preferences:guest:"+t.sessionID).Result()
	if err != nil {
		return err
	}
	if int(count) != quantity {
		return fmt.Errorf("expected %d guest preferences in redis, got %d", quantity, count)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	var field any = object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}
	return field
}
