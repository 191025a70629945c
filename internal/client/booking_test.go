package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"safarpay/internal/services"
	"safarpay/internal/waafipay"
)

const tripCatalog = `{"trips":[
	{"id":7,"origin":"Mogadishu","destination":"Baidoa","price":20,"seatsLeft":5},
	{"id":8,"origin":"Hargeisa","destination":"Berbera","price":9.1,"seatsLeft":2}
]}`

func bookingBackend(t *testing.T, registerCalls *int, registerBody *map[string]any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/trips/public", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(tripCatalog))
	})
	mux.HandleFunc("/bookings/registerBooking", func(w http.ResponseWriter, r *http.Request) {
		if registerCalls != nil {
			*registerCalls++
		}
		if registerBody != nil {
			if err := json.NewDecoder(r.Body).Decode(registerBody); err != nil {
				t.Fatalf("decode register body: %v", err)
			}
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"booking":{"id":12}}`))
	})
	return httptest.NewServer(mux)
}

func gatewayStub(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
}

func TestLoadTripsBuildsOptions(t *testing.T) {
	backend := bookingBackend(t, nil, nil)
	defer backend.Close()

	f := NewBookingFlow(New(backend.URL, "tok"), nil, "2526114455")
	if err := f.LoadTrips(context.Background()); err != nil {
		t.Fatalf("LoadTrips error: %v", err)
	}
	if len(f.Options) != 2 {
		t.Fatalf("options len = %d, want 2", len(f.Options))
	}
	if f.Options[0].Label != "Mogadishu → Baidoa ($20.00)" || f.Options[0].Value != 7 {
		t.Fatalf("first option = %+v", f.Options[0])
	}
}

func TestTotalRecomputesFromSeats(t *testing.T) {
	backend := bookingBackend(t, nil, nil)
	defer backend.Close()

	f := NewBookingFlow(New(backend.URL, "tok"), nil, "2526114455")
	if err := f.LoadTrips(context.Background()); err != nil {
		t.Fatalf("LoadTrips error: %v", err)
	}

	f.TripID = 7
	cases := []struct {
		seats string
		want  float64
	}{
		{"3", 60},
		{"", 0},
		{"abc", 0},
		{"-2", 0},
	}
	for _, tc := range cases {
		f.Seats = tc.seats
		if got := f.Total(); got != tc.want {
			t.Fatalf("Total(seats=%q) = %v, want %v", tc.seats, got, tc.want)
		}
	}

	f.TripID = 8
	f.Seats = "2"
	if got := f.Total(); got != 18.2 {
		t.Fatalf("Total = %v, want 18.2", got)
	}
}

func TestSubmitMissingFields(t *testing.T) {
	backend := bookingBackend(t, nil, nil)
	defer backend.Close()

	f := NewBookingFlow(New(backend.URL, "tok"), nil, "2526114455")
	if err := f.LoadTrips(context.Background()); err != nil {
		t.Fatalf("LoadTrips error: %v", err)
	}

	f.Seats = "3"
	if _, err := f.Submit(context.Background()); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("no trip selected: got %v", err)
	}

	f.TripID = 7
	f.Seats = "abc"
	if _, err := f.Submit(context.Background()); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("unparseable seats: got %v", err)
	}
}

func TestSubmitGatewayRejectionSkipsRegistration(t *testing.T) {
	var registerCalls int
	backend := bookingBackend(t, &registerCalls, nil)
	defer backend.Close()
	gw := gatewayStub(t, `{"responseCode":"3002","responseMsg":"Insufficient funds"}`)
	defer gw.Close()

	f := NewBookingFlow(New(backend.URL, "tok"), waafipay.New(waafipay.Config{URL: gw.URL}), "2526114455")
	if err := f.LoadTrips(context.Background()); err != nil {
		t.Fatalf("LoadTrips error: %v", err)
	}
	f.TripID = 7
	f.Seats = "3"

	_, err := f.Submit(context.Background())
	var gwErr *waafipay.GatewayError
	if !errors.As(err, &gwErr) || gwErr.Message != "Insufficient funds" {
		t.Fatalf("expected gateway rejection, got %v", err)
	}
	if registerCalls != 0 {
		t.Fatalf("register called %d times after rejected payment, want 0", registerCalls)
	}
	if f.Seats != "3" {
		t.Fatal("form must not reset on failure")
	}
}

func TestSubmitRegistersComputedAmounts(t *testing.T) {
	var registerCalls int
	var body map[string]any
	backend := bookingBackend(t, &registerCalls, &body)
	defer backend.Close()
	gw := gatewayStub(t, `{"responseCode":"2001","responseMsg":"RCS_SUCCESS","params":{"transactionId":"WFP-555"}}`)
	defer gw.Close()

	f := NewBookingFlow(New(backend.URL, "tok"), waafipay.New(waafipay.Config{URL: gw.URL}), "2526114455")
	if err := f.LoadTrips(context.Background()); err != nil {
		t.Fatalf("LoadTrips error: %v", err)
	}
	f.TripID = 7
	f.Seats = "3"

	res, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if registerCalls != 1 {
		t.Fatalf("register called %d times, want 1", registerCalls)
	}
	if res.BookingID != 12 || res.TransactionID != "WFP-555" {
		t.Fatalf("result = %+v", res)
	}
	if res.Total != 60 || res.SystemFee != 6 || res.OwnerEarnings != 54 {
		t.Fatalf("amounts = %v/%v/%v, want 60/6/54", res.Total, res.SystemFee, res.OwnerEarnings)
	}

	if body["tripId"] != 7.0 || body["seatsBooked"] != 3.0 {
		t.Fatalf("trip/seat keys wrong: %+v", body)
	}
	if body["totalAmount"] != 60.0 || body["systemFee"] != 6.0 || body["ownerEarnings"] != 54.0 {
		t.Fatalf("registered amounts wrong: %+v", body)
	}
	if body["transactionId"] != "WFP-555" || body["paymentStatus"] != "paid" {
		t.Fatalf("registration payload wrong: %+v", body)
	}

	if f.TripID != 0 || f.Seats != "" {
		t.Fatal("form must reset after a successful booking")
	}
}

// The register body must bind cleanly into the backend's own input struct;
// a renamed JSON key would silently zero the field server-side.
func TestSubmitBodyBindsAsRegisterInput(t *testing.T) {
	var raw []byte
	mux := http.NewServeMux()
	mux.HandleFunc("/trips/public", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(tripCatalog))
	})
	mux.HandleFunc("/bookings/registerBooking", func(w http.ResponseWriter, r *http.Request) {
		var err error
		if raw, err = io.ReadAll(r.Body); err != nil {
			t.Fatalf("read register body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"booking":{"id":12}}`))
	})
	backend := httptest.NewServer(mux)
	defer backend.Close()
	gw := gatewayStub(t, `{"responseCode":"2001","responseMsg":"RCS_SUCCESS","params":{"transactionId":"WFP-555"}}`)
	defer gw.Close()

	f := NewBookingFlow(New(backend.URL, "tok"), waafipay.New(waafipay.Config{URL: gw.URL}), "2526114455")
	if err := f.LoadTrips(context.Background()); err != nil {
		t.Fatalf("LoadTrips error: %v", err)
	}
	f.TripID = 7
	f.Seats = "3"
	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	var in services.RegisterBookingInput
	if err := json.Unmarshal(raw, &in); err != nil {
		t.Fatalf("bind register body: %v", err)
	}
	if in.TripID != 7 || in.SeatsBooked != 3 {
		t.Fatalf("backend-bound trip/seats = %d/%d, want 7/3", in.TripID, in.SeatsBooked)
	}
	if in.TotalAmount != 60 || in.SystemFee != 6 || in.OwnerEarnings != 54 {
		t.Fatalf("backend-bound amounts = %v/%v/%v", in.TotalAmount, in.SystemFee, in.OwnerEarnings)
	}
	if in.PaymentStatus != "paid" || in.TransactionID != "WFP-555" {
		t.Fatalf("backend-bound payment fields = %q/%q", in.PaymentStatus, in.TransactionID)
	}
}

// Seat availability is the backend's call at registration time; the flow
// submits whatever the rider entered and surfaces the backend's rejection.
func TestSubmitSurfacesBackendSeatConflict(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/trips/public", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(tripCatalog))
	})
	mux.HandleFunc("/bookings/registerBooking", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"not enough seats left"}`))
	})
	backend := httptest.NewServer(mux)
	defer backend.Close()
	gw := gatewayStub(t, `{"responseCode":"2001","responseMsg":"RCS_SUCCESS","params":{"transactionId":"WFP-556"}}`)
	defer gw.Close()

	f := NewBookingFlow(New(backend.URL, "tok"), waafipay.New(waafipay.Config{URL: gw.URL}), "2526114455")
	if err := f.LoadTrips(context.Background()); err != nil {
		t.Fatalf("LoadTrips error: %v", err)
	}
	f.TripID = 8
	f.Seats = "5"

	_, err := f.Submit(context.Background())
	if err == nil || !strings.Contains(err.Error(), "not enough seats left") {
		t.Fatalf("expected backend conflict to surface, got %v", err)
	}
	if f.Seats != "5" {
		t.Fatal("form must not reset when registration fails")
	}
}
