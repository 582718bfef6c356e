package catalog

import "github.com/pretest-uz/PreTest-DashboardService/internal/domain"

// ProductResponse тест в каталоге
type ProductResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ProductType    string `json:"product_type"`
	Price          string `json:"price"`
	HasReading     bool   `json:"has_reading"`
	HasListening   bool   `json:"has_listening"`
	HasWriting     bool   `json:"has_writing"`
	HasSpeaking    bool   `json:"has_speaking"`
	HasInvigilator bool   `json:"has_invigilator"`
}

// SessionResponse сессия теста на лендинге
type SessionResponse struct {
	ID             int64  `json:"id"`
	SessionDate    string `json:"session_date"`
	SessionTime    string `json:"session_time"`
	AvailableSlots int    `json:"available_slots"`
	Location       string `json:"location,omitempty"`
	LocationURL    string `json:"location_url,omitempty"`
	IsFull         bool   `json:"is_full"`
}

func fromProducts(products []domain.Product) []ProductResponse {
	resp := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, ProductResponse{
			ID:             p.ID,
			Name:           p.Name,
			ProductType:    string(p.ProductType),
			Price:          p.Price.StringFixed(2),
			HasReading:     p.HasReading,
			HasListening:   p.HasListening,
			HasWriting:     p.HasWriting,
			HasSpeaking:    p.HasSpeaking,
			HasInvigilator: p.HasInvigilator,
		})
	}
	return resp
}

func fromSessions(sessions []domain.TestSession) []SessionResponse {
	resp := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		resp = append(resp, SessionResponse{
			ID:             s.ID,
			SessionDate:    s.SessionDate,
			SessionTime:    s.SessionTime,
			AvailableSlots: s.AvailableSlots,
			Location:       s.Location,
			LocationURL:    s.LocationURL,
			IsFull:         s.IsFull(),
		})
	}
	return resp
}
