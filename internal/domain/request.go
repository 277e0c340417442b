package domain

import "time"

// DonationStatus enumerates the donation-request lifecycle states.
type DonationStatus string

const (
	DonationPending    DonationStatus = "pending"
	DonationInProgress DonationStatus = "inprogress"
	DonationDone       DonationStatus = "done"
	DonationCanceled   DonationStatus = "canceled"
)

// transitions is the fixed table of legal (from, to) pairs. Confirmation may
// repeat from inprogress because several donors can commit to one request.
var transitions = map[DonationStatus][]DonationStatus{
	DonationPending:    {DonationInProgress},
	DonationInProgress: {DonationInProgress, DonationDone, DonationCanceled},
}

// CanTransition reports whether moving from one status to another is legal.
// Terminal states have no outgoing edges.
func CanTransition(from, to DonationStatus) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// TransitionSources returns every status from which the target status is
// reachable, in declaration order. Used to guard conditional UPDATEs.
func TransitionSources(to DonationStatus) []string {
	var sources []string
	for _, from := range []DonationStatus{DonationPending, DonationInProgress, DonationDone, DonationCanceled} {
		if CanTransition(from, to) {
			sources = append(sources, string(from))
		}
	}
	return sources
}

// ValidDonationStatus reports whether the value is a known lifecycle state.
func ValidDonationStatus(s string) bool {
	switch DonationStatus(s) {
	case DonationPending, DonationInProgress, DonationDone, DonationCanceled:
		return true
	}
	return false
}

// TerminalDonationStatus reports whether the state has no outgoing edges.
func TerminalDonationStatus(s DonationStatus) bool {
	return len(transitions[s]) == 0
}

// DonorEntry is one confirmed donor on a request. donor_info is an
// append-only jsonb array of these.
type DonorEntry struct {
	DonorName   string    `json:"donorName"`
	DonorEmail  string    `json:"donorEmail"`
	ConfirmedAt time.Time `json:"confirmedAt"`
}

// DonationRequest is one blood request posted by a requester.
type DonationRequest struct {
	ID             string
	RequesterName  string
	RequesterEmail string
	RecipientName  string
	District       string
	Upazila        string
	Hospital       string
	Address        string
	BloodGroup     string
	DonationDate   string
	DonationTime   string
	Message        string
	Status         DonationStatus
	DonorInfo      []DonorEntry
	CreatedAt      time.Time
}
