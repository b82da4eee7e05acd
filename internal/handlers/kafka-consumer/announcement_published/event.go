package announcement_published

// publishedEvent - событие публикации или изменения заявки.
type publishedEvent struct {
	AnnouncementID string `json:"announcement_id"`
	Status         string `json:"status"`
}
