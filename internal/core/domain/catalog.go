package domain

type ServiceCategory string

const (
	CategoryPlumbing           ServiceCategory = "PLUMBING"
	CategoryElectricity        ServiceCategory = "ELECTRICITY"
	CategoryCarpentry          ServiceCategory = "CARPENTRY"
	CategoryPainting           ServiceCategory = "PAINTING"
	CategoryCleaning           ServiceCategory = "CLEANING"
	CategoryApplianceRepair    ServiceCategory = "APPLIANCE_REPAIR"
	CategoryHVAC               ServiceCategory = "HVAC"
	CategoryITSupport          ServiceCategory = "IT_SUPPORT"
	CategoryLocksmith          ServiceCategory = "LOCKSMITH"
	CategoryGeneralMaintenance ServiceCategory = "GENERAL_MAINTENANCE"
	CategoryOther              ServiceCategory = "OTHER"
)

func (c ServiceCategory) IsValid() bool {
	switch c {
	case CategoryPlumbing, CategoryElectricity, CategoryCarpentry, CategoryPainting,
		CategoryCleaning, CategoryApplianceRepair, CategoryHVAC, CategoryITSupport,
		CategoryLocksmith, CategoryGeneralMaintenance, CategoryOther:
		return true
	}
	return false
}

// Service is a bookable home service.
type Service struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Category          ServiceCategory `json:"category"`
	TotalTechnicians  int             `json:"totalTechnicians"`
	TotalReservations int             `json:"totalReservations"`
}

type ServiceInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    ServiceCategory `json:"category"`
}

// Technician is the public technician profile.
type Technician struct {
	ID                      int64             `json:"id"`
	FirstName               string            `json:"firstName"`
	LastName                string            `json:"lastName"`
	Email                   string            `json:"email"`
	Phone                   string            `json:"phone,omitempty"`
	Description             string            `json:"description,omitempty"`
	Specialties             []ServiceCategory `json:"specialties"`
	AverageRating           float64           `json:"averageRating"`
	TotalServices           int               `json:"totalServices"`
	TotalCertifications     int               `json:"totalCertifications"`
	ValidatedCertifications int               `json:"validatedCertifications"`
}

type TechnicianUpdate struct {
	Phone       string            `json:"phone,omitempty"`
	Description string            `json:"description,omitempty"`
	Specialties []ServiceCategory `json:"specialties,omitempty"`
}

// TechnicianSearch filters the technician directory. Zero values are
// omitted from the query.
type TechnicianSearch struct {
	Specialty ServiceCategory
	MinRating float64
	PageRequest
}
