//go:build e2e

package booking_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	nethttptest "net/http/httptest"
	"sync"
	"testing"

	"slotbook/internal/handler/dto/response"
	"slotbook/tests/common/builder"
	"slotbook/tests/common/httptest"
	"slotbook/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL     = "/api/bookings"
	availabilityURL = "/api/availability?date=%s"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) availableSlots(date string) []string {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(availabilityURL, date), nil)
	require.Equal(t, http.StatusOK, w.Code, "availability request failed: %s", w.Body.String())

	var resp response.AvailabilityResponse
	_ = httptest.DecodeResponseBody(t, w.Body, &resp)
	return resp.Slots
}

// =============================================================================
// TestCreateBooking
// =============================================================================

func (s *BookingSuite) TestCreateBooking() {
	s.Run("create then get returns the same booking", func() {
		t := s.T()

		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody)
		require.Equal(t, http.StatusCreated, w.Code, "create failed: %s", w.Body.String())

		var created response.BookingResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &created)
		require.NotEmpty(t, created.ID)
		require.Equal(t, bookingsURL+"/"+created.ID.String(), w.Header().Get("Location"))

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+created.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var fetched response.BookingResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &fetched)

		if diff := cmp.Diff(created, fetched, cmpopts.EquateApproxTime(0)); diff != "" {
			t.Errorf("round trip mismatch (-created +fetched):\n%s", diff)
		}
	})

	s.Run("second booking for the same slot is rejected", func() {
		t := s.T()

		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody)
		require.Equal(t, http.StatusCreated, w.Code)

		other := builder.NewBookingBuilder().WithName("Bea").WithContact("b@x.com").BuildCreateRequestDTO()
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, other)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Slot already booked")
	})

	s.Run("same time on a different date is accepted", func() {
		t := s.T()

		first := builder.NewBookingBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, first)
		require.Equal(t, http.StatusCreated, w.Code)

		second := builder.NewBookingBuilder().WithDate("2025-03-02").BuildCreateRequestDTO()
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, second)
		require.Equal(t, http.StatusCreated, w.Code, "a different day must not conflict: %s", w.Body.String())
	})

	s.Run("validation reasons are returned verbatim", func() {
		t := s.T()

		cases := []struct {
			name   string
			mutate func(*builder.BookingBuilder)
			reason string
		}{
			{
				name:   "zero guests",
				mutate: func(b *builder.BookingBuilder) { b.WithGuests(0) },
				reason: "Guests must be a positive number",
			},
			{
				name:   "time outside business hours",
				mutate: func(b *builder.BookingBuilder) { b.WithTime("09:00") },
				reason: "Time is not a bookable slot",
			},
			{
				name:   "malformed date",
				mutate: func(b *builder.BookingBuilder) { b.WithDate("03/01/2025") },
				reason: "Date must be in YYYY-MM-DD format",
			},
		}

		for _, tc := range cases {
			reqBody := builder.NewBookingBuilder().With(tc.mutate).BuildCreateRequestDTO()
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody)
			httptest.AssertErrorResponse(t, w, http.StatusBadRequest, tc.reason)
		}
	})
}

// =============================================================================
// TestConcurrentClaims - a slot can only be won once
// =============================================================================

func (s *BookingSuite) TestConcurrentClaims() {
	s.Run("exactly one of many simultaneous claims wins", func() {
		t := s.T()
		const claimants = 10

		body, err := json.Marshal(builder.NewBookingBuilder().BuildCreateRequestDTO())
		require.NoError(t, err)

		var wg sync.WaitGroup
		start := make(chan struct{})
		codes := make([]int, claimants)

		for i := range claimants {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start

				req := nethttptest.NewRequest(http.MethodPost, bookingsURL, bytes.NewReader(body))
				req.Header.Set("Content-Type", "application/json")
				rec := nethttptest.NewRecorder()
				s.Router.ServeHTTP(rec, req)
				codes[i] = rec.Code
			}()
		}

		close(start)
		wg.Wait()

		var won, lost int
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				won++
			case http.StatusBadRequest:
				lost++
			default:
				t.Errorf("unexpected status %d during claim race", code)
			}
		}
		require.Equal(t, 1, won, "exactly one claim must win")
		require.Equal(t, claimants-1, lost, "every other claim must lose cleanly")
	})
}

// =============================================================================
// TestAvailability
// =============================================================================

func (s *BookingSuite) TestAvailability() {
	s.Run("booked slots disappear and return after delete", func() {
		t := s.T()
		date := "2025-03-01"

		before := s.availableSlots(date)
		require.Contains(t, before, "14:00")
		require.Len(t, before, 11)

		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody)
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.BookingResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &created)

		require.NotContains(t, s.availableSlots(date), "14:00")

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, bookingsURL+"/"+created.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		require.Contains(t, s.availableSlots(date), "14:00")
	})

	s.Run("malformed date is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(availabilityURL, "not-a-date"), nil)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid date format")
	})
}

// =============================================================================
// TestUpdateBooking
// =============================================================================

func (s *BookingSuite) TestUpdateBooking() {
	s.Run("moving a booking frees the old slot and claims the new one", func() {
		t := s.T()
		date := "2025-03-01"

		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody)
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.BookingResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &created)

		patch := map[string]any{"time": "16:00"}
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, bookingsURL+"/"+created.ID.String(), patch)
		require.Equal(t, http.StatusOK, w.Code, "update failed: %s", w.Body.String())

		var updated response.BookingResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &updated)
		require.Equal(t, "16:00", updated.Time)
		require.Equal(t, created.Guests, updated.Guests, "untouched fields keep their values")
		require.Equal(t, created.Name, updated.Name)

		slots := s.availableSlots(date)
		require.Contains(t, slots, "14:00", "old slot must be released")
		require.NotContains(t, slots, "16:00", "new slot must be claimed")
	})

	s.Run("moving onto an occupied slot is rejected", func() {
		t := s.T()

		first := builder.NewBookingBuilder().WithTime("14:00").BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, first)
		require.Equal(t, http.StatusCreated, w.Code)

		second := builder.NewBookingBuilder().WithTime("16:00").WithName("Bea").BuildCreateRequestDTO()
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, second)
		require.Equal(t, http.StatusCreated, w.Code)

		var target response.BookingResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &target)

		patch := map[string]any{"time": "14:00"}
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, bookingsURL+"/"+target.ID.String(), patch)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Slot already booked")
	})

	s.Run("unknown booking returns 404", func() {
		t := s.T()

		patch := map[string]any{"guests": 3}
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, bookingsURL+"/00000000-0000-0000-0000-000000000000", patch)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Booking not found")
	})
}

// =============================================================================
// TestListBookings
// =============================================================================

func (s *BookingSuite) TestListBookings() {
	s.Run("list is ordered by date then time", func() {
		t := s.T()

		out := []struct {
			date string
			time string
		}{
			{"2025-03-02", "10:00"},
			{"2025-03-01", "18:00"},
			{"2025-03-01", "10:00"},
			{"2025-03-02", "14:00"},
		}
		for _, b := range out {
			reqBody := builder.NewBookingBuilder().WithDate(b.date).WithTime(b.time).BuildCreateRequestDTO()
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody)
			require.Equal(t, http.StatusCreated, w.Code)
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var listed []response.BookingResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &listed)
		require.Len(t, listed, 4)

		type key struct{ date, time string }
		var got []key
		for _, b := range listed {
			got = append(got, key{b.Date, b.Time})
		}
		want := []key{
			{"2025-03-01", "10:00"},
			{"2025-03-01", "18:00"},
			{"2025-03-02", "10:00"},
			{"2025-03-02", "14:00"},
		}
		require.Equal(t, want, got)
	})

	s.Run("date filter narrows the list", func() {
		t := s.T()

		for _, b := range []struct{ date, time string }{
			{"2025-03-01", "10:00"},
			{"2025-03-02", "10:00"},
		} {
			reqBody := builder.NewBookingBuilder().WithDate(b.date).WithTime(b.time).BuildCreateRequestDTO()
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody)
			require.Equal(t, http.StatusCreated, w.Code)
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?date=2025-03-01", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var listed []response.BookingResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &listed)
		require.Len(t, listed, 1)
		require.Equal(t, "2025-03-01", listed[0].Date)
	})

	s.Run("empty store lists nothing", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var listed []response.BookingResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &listed)
		require.Empty(t, listed)
	})
}

// =============================================================================
// TestDeleteBooking
// =============================================================================

func (s *BookingSuite) TestDeleteBooking() {
	s.Run("deleted bookings are gone", func() {
		t := s.T()

		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody)
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.BookingResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &created)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, bookingsURL+"/"+created.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+created.ID.String(), nil)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Booking not found")
	})

	s.Run("deleting twice returns 404 on the second attempt", func() {
		t := s.T()

		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody)
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.BookingResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &created)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, bookingsURL+"/"+created.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, bookingsURL+"/"+created.ID.String(), nil)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Booking not found")
	})
}
