package scheduler

import (
	"time"

	"github.com/jimyag/vsched/internal/vsched/repository/model"
)

// ServiceIsUp 根据最近一次心跳判断服务是否在线
// 心跳时间取 updated_at 和 created_at 中较晚的一个，
// 从未上报过心跳的记录视为刚创建。
// 心跳年龄严格小于 downTime 才算在线。
func ServiceIsUp(service *model.Service, now time.Time, downTime time.Duration) bool {
	lastHeartbeat := service.UpdatedAt
	if service.CreatedAt.After(lastHeartbeat) {
		lastHeartbeat = service.CreatedAt
	}
	return now.Sub(lastHeartbeat) < downTime
}
