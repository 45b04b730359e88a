package models

// All lists every table managed by AutoMigrate, parents first.
func All() []any {
	return []any{
		&User{},
		&GuestbookPost{},
		&GuestbookReply{},
		&GuestbookLike{},
		&GuestbookReplyLike{},
		&Notification{},
		&Message{},
		&BlogPost{},
		&BlogLike{},
		&Project{},
		&TechStack{},
		&Visitor{},
	}
}
