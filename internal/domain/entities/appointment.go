package entities

// AppointmentStatus represents the status of a reservation
type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// GuestName is the placeholder patient name used for anonymous quick booking.
const GuestName = "Гость"

// AppointmentRequest is the client-side payload for creating a reservation.
// It is constructed from form input and never persisted locally. Datetime
// carries the raw datetime-local form value (e.g. "2024-05-01T10:00") and is
// echoed back unchanged by the backend.
type AppointmentRequest struct {
	PatientName string `json:"patient_name"`
	Phone       string `json:"phone,omitempty"`
	HospitalID  int64  `json:"hospital"`
	Specialty   string `json:"specialty"`
	Datetime    string `json:"datetime"`
}

// Appointment is a reservation as reported by the backend. The code is an
// opaque token, case-insensitive on lookup. QueuePosition is 1-based; 1 means
// next to be served. The record is mutated only by the backend and becomes
// unresolvable by its code once cancelled.
type Appointment struct {
	Code            string            `json:"code"`
	PatientName     string            `json:"patient_name"`
	HospitalID      int64             `json:"hospital,omitempty"`
	HospitalName    string            `json:"hospital_name,omitempty"`
	HospitalAddress string            `json:"hospital_address,omitempty"`
	Specialty       string            `json:"specialty"`
	Datetime        string            `json:"datetime"`
	QueuePosition   int               `json:"queue_position"`
	EstimatedWait   int               `json:"estimated_wait_time,omitempty"`
	Status          AppointmentStatus `json:"status,omitempty"`
}
