package model

// All lists every persisted model for AutoMigrate.
func All() []any {
	return []any{&User{}, &Post{}, &Comment{}, &Like{}, &Notification{}}
}
