package repository

import "time"

// GORM models of the booking and flight-performance tables read by GormTripRepository.
// The service only reads them; the seed tool uses the models to migrate and fill a demo schema.

// AirlineModel maps carriers to their display names
type AirlineModel struct {
	IATACode string `gorm:"column:iata_code;primaryKey;size:3"`
	Airline  string `gorm:"column:airline;not null"`
}

// TableName overrides the default table name
func (AirlineModel) TableName() string {
	return "airlines_idb"
}

// TicketModel is a booked flight segment
type TicketModel struct {
	ID      uint      `gorm:"column:id;primaryKey"`
	FlDate  time.Time `gorm:"column:fl_date;type:date;not null"`
	FlNum   string    `gorm:"column:fl_num;not null"`
	Carrier string    `gorm:"column:carrier;size:3;not null;index"`
	Origin  string    `gorm:"column:origin;size:3;not null"`
	Dest    string    `gorm:"column:dest;size:3;not null"`
}

// TableName overrides the default table name
func (TicketModel) TableName() string {
	return "tickets_idb"
}

// TripModel links a traveller's trip to a ticket
type TripModel struct {
	ID       uint `gorm:"column:id;primaryKey"`
	TicketID uint `gorm:"column:ticket_id;not null;index"`
}

// TableName overrides the default table name
func (TripModel) TableName() string {
	return "trips_idb"
}

// FlightModel is a scheduled flight
type FlightModel struct {
	ID      uint      `gorm:"column:id;primaryKey"`
	Year    int       `gorm:"column:year;not null;index"`
	FlDate  time.Time `gorm:"column:fl_date;type:date;not null"`
	Carrier string    `gorm:"column:carrier;size:3;not null"`
	FlNum   string    `gorm:"column:fl_num;not null"`
	Origin  string    `gorm:"column:origin;size:3"`
	Dest    string    `gorm:"column:dest;size:3"`
	DepTime string    `gorm:"column:dep_time;size:4"`
	ArrTime string    `gorm:"column:arr_time;size:4"`
}

// TableName overrides the default table name
func (FlightModel) TableName() string {
	return "flights_idb"
}

// FlightHistoryModel is one historical on-time performance record
type FlightHistoryModel struct {
	ID        uint     `gorm:"column:id;primaryKey"`
	Year      int      `gorm:"column:year;not null"`
	Month     int      `gorm:"column:month;not null;index:idx_flights_cs_day"`
	Day       int      `gorm:"column:day;not null;index:idx_flights_cs_day"`
	Carrier   string   `gorm:"column:carrier;size:3;not null;index:idx_flights_cs_day"`
	FlNum     string   `gorm:"column:fl_num"`
	Origin    string   `gorm:"column:origin;size:3"`
	Dest      string   `gorm:"column:dest;size:3"`
	DepDelay  *float64 `gorm:"column:dep_delay"` // minutes, NULL when cancelled
	Cancelled int      `gorm:"column:cancelled;not null;default:0"`
}

// TableName overrides the default table name
func (FlightHistoryModel) TableName() string {
	return "flights_cs"
}

// Models lists every table model in migration order
func Models() []interface{} {
	return []interface{}{
		&AirlineModel{},
		&TicketModel{},
		&TripModel{},
		&FlightModel{},
		&FlightHistoryModel{},
	}
}
