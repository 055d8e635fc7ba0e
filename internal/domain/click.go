package domain

import (
	"net"
	"time"
)

// Click is a detailed analytics row recorded for each resolved short link.
// The aggregate counter lives on ShortLink; losing a Click row under load
// is acceptable, losing a counter increment is not.
type Click struct {
	ID         int64     `gorm:"primaryKey;column:id" json:"id"`
	LinkID     int64     `gorm:"column:link_id;not null;index" json:"link_id"`
	IPAddress  *net.IP   `gorm:"column:ip_address;type:inet" json:"ip_address,omitempty"`
	UserAgent  *string   `gorm:"column:user_agent;type:text" json:"user_agent,omitempty"`
	Referer    *string   `gorm:"column:referer;size:500" json:"referer,omitempty"`
	DeviceType *string   `gorm:"column:device_type;size:10" json:"device_type,omitempty"` // 'desktop', 'mobile', 'tablet', 'bot'
	Browser    *string   `gorm:"column:browser;size:50" json:"browser,omitempty"`
	OS         *string   `gorm:"column:os;size:50" json:"os,omitempty"`
	ClickedAt  time.Time `gorm:"column:clicked_at;autoCreateTime;index" json:"clicked_at"`

	// Relationships
	Link *ShortLink `gorm:"foreignKey:LinkID" json:"link,omitempty"`
}

// TableName returns the table name for GORM.
func (Click) TableName() string {
	return "clicks"
}

// GetDeviceType returns the device type, defaulting to "unknown".
func (c *Click) GetDeviceType() string {
	if c.DeviceType != nil {
		return *c.DeviceType
	}
	return "unknown"
}
