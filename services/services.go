package services

import "gorm.io/gorm"

// Services groups the core components sharing one database handle
type Services struct {
	Identity   *Identity
	Catalog    *Catalog
	Ledger     *Ledger
	Tracker    *Tracker
	Statistics *Statistics
}

// App is the instance used by the HTTP controllers, set by Init
var App *Services

// New wires every component on the same database
func New(db *gorm.DB, bcryptCost int) *Services {
	ledger := NewLedger(db)
	tracker := NewTracker(db, ledger)
	return &Services{
		Identity:   NewIdentity(db, bcryptCost),
		Catalog:    NewCatalog(db),
		Ledger:     ledger,
		Tracker:    tracker,
		Statistics: NewStatistics(db, tracker),
	}
}

// Init builds the components and publishes them as App
func Init(db *gorm.DB, bcryptCost int) *Services {
	App = New(db, bcryptCost)
	return App
}
