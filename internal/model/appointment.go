package model

type AppointmentStatus string

const (
	AppointmentStatusBooked     AppointmentStatus = "BOOKED"
	AppointmentStatusVitalsDone AppointmentStatus = "VITALS_DONE"
	AppointmentStatusInProgress AppointmentStatus = "IN_PROGRESS"
	AppointmentStatusCompleted  AppointmentStatus = "COMPLETED"
)

// Appointment mirrors the backend's appointment resource. The gateway holds
// request-scoped copies only; the backend owns the record.
type Appointment struct {
	ID          int64             `json:"id"`
	PatientID   int64             `json:"patientId"`
	DoctorID    int64             `json:"doctorId"`
	TokenNumber int               `json:"tokenNumber"`
	Status      AppointmentStatus `json:"status"`
	VitalSigns  *VitalSigns       `json:"vitalSigns,omitempty"`
}

// VitalSigns is written once by the nurse surface and read-only thereafter.
// Pulse stays free text; everything else is numeric.
type VitalSigns struct {
	Weight      float64 `json:"weight"`
	Height      int     `json:"height"`
	SystolicBP  int     `json:"systolicBP"`
	DiastolicBP int     `json:"diastolicBP"`
	Temperature float64 `json:"temperature"`
	Pulse       string  `json:"pulse"`
}

// transitions is the full lifecycle: BOOKED -> VITALS_DONE -> IN_PROGRESS ->
// COMPLETED. Strictly forward, no skip, no reverse. Enforcement lives
// server-side; this table decides which actions each surface enables.
var transitions = map[AppointmentStatus]AppointmentStatus{
	AppointmentStatusBooked:     AppointmentStatusVitalsDone,
	AppointmentStatusVitalsDone: AppointmentStatusInProgress,
	AppointmentStatusInProgress: AppointmentStatusCompleted,
}

// CanTransition reports whether from -> to is a legal single step.
func CanTransition(from, to AppointmentStatus) bool {
	next, ok := transitions[from]
	return ok && next == to
}

// AllowedActions describes what a surface may do with an appointment in the
// given status.
type AllowedActions struct {
	RecordVitals bool `json:"recordVitals"`
	Start        bool `json:"start"`
	Complete     bool `json:"complete"`
	ReadOnly     bool `json:"readOnly"`
}

// ActionsFor returns the single place that decides per-status action
// enablement, replacing scattered per-screen conditionals.
func ActionsFor(status AppointmentStatus) AllowedActions {
	return AllowedActions{
		RecordVitals: status == AppointmentStatusBooked,
		Start:        status == AppointmentStatusVitalsDone,
		Complete:     status == AppointmentStatusInProgress,
		ReadOnly:     status == AppointmentStatusCompleted,
	}
}

// ValidStatus reports whether s is one of the four lifecycle states.
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentStatusBooked, AppointmentStatusVitalsDone,
		AppointmentStatusInProgress, AppointmentStatusCompleted:
		return true
	}
	return false
}

// FilterByStatus returns the subset of appointments in the given status. An
// empty status returns the input unchanged. Pure function: the doctor queue
// tabs apply it to an already-fetched list, never to a new network call.
func FilterByStatus(appointments []Appointment, status AppointmentStatus) []Appointment {
	if status == "" {
		return appointments
	}
	filtered := make([]Appointment, 0, len(appointments))
	for _, a := range appointments {
		if a.Status == status {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
