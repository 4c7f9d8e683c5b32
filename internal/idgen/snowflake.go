package idgen

import (
	"fmt"
	"log"

	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

// Init 初始化雪花节点（多实例部署时 nodeID 取自配置，0-1023）
func Init(nodeID int64) {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		log.Fatalf("[IDGen] init snowflake node failed: %v", err)
	}
	node = n
}

// New 生成全局唯一 ID
func New() uint64 {
	if node == nil {
		panic("idgen: snowflake node not initialized")
	}
	return uint64(node.Generate().Int64())
}

// NewTransactionID 交易流水号：TXN_<订单号>_<雪花ID>
// 同一订单的多次下单尝试保证不冲突
func NewTransactionID(orderID string) string {
	return fmt.Sprintf("TXN_%s_%d", orderID, New())
}
