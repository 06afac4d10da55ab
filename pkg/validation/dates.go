package validation

import (
	"strings"
	"time"
)

// Keys of the date cluster in the error map.
const (
	KeyJoining         = "dateOfJoining"
	KeyOnboarding      = "dateOfOnboardingToClient"
	KeyOffboarding     = "dateOfClientOffboarding"
	KeyBillingStart    = "billingStartDate"
	KeyBillingStop     = "billingStopDate"
	KeyClientSelection = "clientSelection"
)

// DateClusterKeys are recomputed together by CheckDates.
var DateClusterKeys = []string{KeyJoining, KeyOnboarding, KeyOffboarding, KeyBillingStart, KeyBillingStop}

const (
	MsgJoiningRequired          = "Date of joining is required"
	MsgOnboardingBeforeJoining  = "Onboarding date cannot be before date of joining"
	MsgOffboardingBeforeOnboard = "Offboarding date cannot be before onboarding date"
	MsgBillingStartBeforeOnb    = "Billing start date cannot be before onboarding date"
	MsgBillingStartAfterOffb    = "Billing start date must be before offboarding date"
	MsgBillingStartAfterStop    = "Billing start date must be before billing stop date"
	MsgBillingStopBeforeStart   = "Billing stop date must be after billing start date"
	MsgBillingStopBeforeOffb    = "Billing stop date cannot be before offboarding date"
)

/* =========================== Client selection =========================== */

type SelectionKind int

const (
	SelectionNone SelectionKind = iota
	SelectionStatus
	SelectionClient
)

// ClientSelection is either a real client id or a status placeholder
// such as BENCH or INHOUSE.
type ClientSelection struct {
	Kind  SelectionKind
	Value string
}

// StatusClients are the placeholders accepted without a "STATUS:" prefix.
var StatusClients = []string{"BENCH", "INHOUSE", "NOTICE_PERIOD", "TRAINING", "ON_LEAVE"}

// ParseClientSelection reads "CLIENT:<id>", "STATUS:<name>", a bare status
// name, a bare client id, or "".
func ParseClientSelection(s string) ClientSelection {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)
	switch {
	case s == "":
		return ClientSelection{}
	case strings.HasPrefix(upper, "STATUS:"):
		v := strings.TrimSpace(upper[len("STATUS:"):])
		if v == "" {
			return ClientSelection{}
		}
		return ClientSelection{Kind: SelectionStatus, Value: v}
	case strings.HasPrefix(upper, "CLIENT:"):
		v := strings.TrimSpace(s[len("CLIENT:"):])
		if v == "" {
			return ClientSelection{}
		}
		return ClientSelection{Kind: SelectionClient, Value: v}
	}
	for _, st := range StatusClients {
		if upper == st {
			return ClientSelection{Kind: SelectionStatus, Value: st}
		}
	}
	return ClientSelection{Kind: SelectionClient, Value: s}
}

func (c ClientSelection) String() string {
	switch c.Kind {
	case SelectionStatus:
		return "STATUS:" + c.Value
	case SelectionClient:
		return "CLIENT:" + c.Value
	}
	return ""
}

/* ============================== Date cluster ============================= */

// DateCluster is the set of employment dates validated as one unit.
type DateCluster struct {
	Joining      string `json:"dateOfJoining"`
	Onboarding   string `json:"dateOfOnboardingToClient"`
	Offboarding  string `json:"dateOfClientOffboarding"`
	BillingStart string `json:"billingStartDate"`
	BillingStop  string `json:"billingStopDate"`

	Client ClientSelection `json:"-"`
}

// DateClusterFromSnapshot reads the cluster from a form snapshot.
func DateClusterFromSnapshot(snap Snapshot) DateCluster {
	get := func(k string) string {
		v, _ := lookup(snap, k)
		return v
	}
	sel, _ := lookup(snap, KeyClientSelection)
	return DateCluster{
		Joining:      get(KeyJoining),
		Onboarding:   get(KeyOnboarding),
		Offboarding:  get(KeyOffboarding),
		BillingStart: get(KeyBillingStart),
		BillingStop:  get(KeyBillingStop),
		Client:       ParseClientSelection(sel),
	}
}

// ParseDate accepts strict YYYY-MM-DD only.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) != len(time.DateOnly) {
		return time.Time{}, false
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// CheckDates recomputes every date-cluster key in s from scratch.
// Pairwise rules are independent so several keys can fail at once; per key
// the first failing rule wins. Unparseable dates count as absent.
func CheckDates(s *Session, c DateCluster) {
	for _, k := range DateClusterKeys {
		s.ClearError(k)
	}
	for k, msg := range DateErrors(c) {
		s.SetError(k, msg)
	}
}

// DateErrors is the pure form of CheckDates.
func DateErrors(c DateCluster) map[string]string {
	out := map[string]string{}
	fail := func(key, msg string) {
		if _, ok := out[key]; !ok {
			out[key] = msg
		}
	}

	join, hasJoin := ParseDate(c.Joining)
	switch c.Client.Kind {
	case SelectionNone:
		return out
	case SelectionStatus:
		if !hasJoin {
			fail(KeyJoining, MsgJoiningRequired)
		}
		return out
	}

	if !hasJoin {
		fail(KeyJoining, MsgJoiningRequired)
		return out
	}

	onb, hasOnb := ParseDate(c.Onboarding)
	offb, hasOffb := ParseDate(c.Offboarding)
	start, hasStart := ParseDate(c.BillingStart)
	stop, hasStop := ParseDate(c.BillingStop)

	if hasOnb && onb.Before(join) {
		fail(KeyOnboarding, MsgOnboardingBeforeJoining)
	}
	if hasOffb && hasOnb && offb.Before(onb) {
		fail(KeyOffboarding, MsgOffboardingBeforeOnboard)
	}

	if hasStart {
		if hasOnb && start.Before(onb) {
			fail(KeyBillingStart, MsgBillingStartBeforeOnb)
		}
		if hasOffb && !start.Before(offb) {
			fail(KeyBillingStart, MsgBillingStartAfterOffb)
		}
		if hasStop && !start.Before(stop) {
			fail(KeyBillingStart, MsgBillingStartAfterStop)
		}
	}

	if hasStop {
		if hasStart && !stop.After(start) {
			fail(KeyBillingStop, MsgBillingStopBeforeStart)
		}
		if hasOffb && stop.Before(offb) {
			fail(KeyBillingStop, MsgBillingStopBeforeOffb)
		}
	}
	return out
}
