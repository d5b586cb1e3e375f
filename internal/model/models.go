package model

// All returns every persisted model in foreign key dependency order.
func All() []Record {
	return []Record{
		&Company{},
		&Role{},
		&Project{},
		&Budget{},
		&Chapter{},
		&Activity{},
		&Attribute{},
		&CostDetail{},
		&User{},
	}
}
