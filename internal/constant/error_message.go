package constant

// ErrorInfo 错误信息结构
type ErrorInfo struct {
	CN string `json:"cn"` // 中文错误信息
	EN string `json:"en"` // 英文错误信息
}

// ErrorMessages 错误信息映射
var ErrorMessages = map[int]ErrorInfo{
	// 系统错误
	CodeSuccess:       {"操作成功", "Success"},
	CodeSystemError:   {"系统错误", "System error"},
	CodeDatabaseError: {"数据库错误", "Database error"},
	CodeInternalError: {"内部服务错误", "Internal error"},
	CodeTimeout:       {"请求超时", "Request timeout"},

	// 参数错误
	CodeInvalidParams:   {"参数格式错误", "Invalid params"},
	CodeMissingParams:   {"缺少必要参数", "Missing params"},
	CodeParamsTypeError: {"参数类型错误", "Params type error"},

	// 认证错误
	CodeUnauthorized:   {"未授权访问", "Authentication required"},
	CodeSignatureError: {"签名验证失败", "Signature verification failed"},

	// 订单错误
	CodeOrderNotFound:       {"订单不存在", "Order not found"},
	CodeOrderStatusInvalid:  {"订单状态无效", "Order status invalid"},
	CodeOrderPaid:           {"订单已支付", "Order already paid"},
	CodeOrderProcessing:     {"订单支付处理中", "Order payment in progress"},
	CodeOrderRetryRequired:  {"订单已失败，请先重试订单", "Order failed, retry required before a new attempt"},
	CodeOrderRetryForbidden: {"当前状态不允许重试", "Retry not allowed in current status"},
	CodeTransactionNotFound: {"交易流水不存在", "Transaction not found"},

	// 网关错误
	CodeGatewayConfig:          {"支付网关配置错误", "Payment gateway not configured properly"},
	CodeGatewayUnreachable:     {"支付网关不可达，请稍后重试", "Payment gateway unreachable"},
	CodeGatewayTransport:       {"支付网关异常，请稍后重试", "Payment gateway error"},
	CodeGatewayBusiness:        {"支付网关拒绝交易", "Payment gateway rejected"},
	CodeGatewayInvalidResponse: {"支付网关响应异常", "Invalid response from payment gateway"},
}
