package create_booking

import (
	"time"

	"github.com/m1shk4/AquaWash-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID int64            // ID клиента
	CenterID   int64            // ID центра мойки
	VehicleID  int64            // ID автомобиля клиента
	ServiceIDs []int64          // ID заказанных услуг (минимум одна)
	Date       time.Time        // Дата бронирования (без времени)
	StartTime  types.TimeString // Время начала слота (например, "10:00")
	BayNumber  *int             // Конкретный пост (опционально, иначе подбирается свободный)
	StaffIDs   []int64          // Назначаемые сотрудники (опционально)
	Notes      *string          // Дополнительные заметки (опционально)
	Recurrence *string          // Метаданные повторения (хранятся как есть)
}

// ItemResponse позиция услуги в ответе
type ItemResponse struct {
	ServiceID       int64
	ServiceName     string
	Price           float64
	FinalPrice      float64
	DurationMinutes int
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	BookingNumber string
	CenterID      int64
	CustomerID    int64
	VehicleID     int64

	ScheduledDate     time.Time
	ScheduledTime     types.TimeString
	BayNumber         int
	EstimatedDuration int

	TotalAmount float64
	FinalAmount float64

	Status        string
	PaymentStatus string

	Items    []ItemResponse
	StaffIDs []int64

	Notes      *string
	Recurrence *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BulkResult результат создания одного бронирования из пакетного запроса.
// Ошибка одного элемента не влияет на остальные.
type BulkResult struct {
	Index   int
	Booking *Response
	Err     error
}
