package constant

// 系统级错误码 (1xxx)
const (
	CodeSuccess       = 0    // 操作成功
	CodeSystemError   = 1000 // 系统内部错误
	CodeDatabaseError = 1001 // 数据库操作失败
	CodeInternalError = 1003 // 业务逻辑处理过程中出现的未预期异常
	CodeTimeout       = 1005 // 请求处理超时
)

// 参数错误码
const (
	CodeInvalidParams   = 1100 // 参数格式错误
	CodeMissingParams   = 1101 // 缺少必要参数
	CodeParamsTypeError = 1103 // 参数类型与预期不匹配
)

// 认证授权错误码
const (
	CodeUnauthorized   = 1200 // 未授权访问，缺少有效身份认证信息
	CodeSignatureError = 1203 // 签名验证失败
)

// 订单相关错误码 (21xx)
const (
	CodeOrderNotFound       = 2100 // 订单不存在或不属于当前用户
	CodeOrderStatusInvalid  = 2102 // 订单状态不允许当前操作
	CodeOrderPaid           = 2105 // 订单已支付，禁止重复发起
	CodeOrderProcessing     = 2108 // 订单支付处理中，已有进行中的网关交易
	CodeOrderRetryRequired  = 2109 // 订单已失败，需显式重试后才能再次发起
	CodeOrderRetryForbidden = 2110 // 当前状态不允许重试
	CodeTransactionNotFound = 2120 // 交易流水不存在
)

// 网关相关错误码 (3xxx)
const (
	// CodeGatewayConfig 网关配置错误
	// 适用场景：凭据缺失或密钥长度非法，启动期即应失败
	CodeGatewayConfig = 3000

	// CodeGatewayUnreachable 网关不可达
	// 适用场景：连接拒绝、DNS 失败、请求超时；可安全重试整个下单调用
	CodeGatewayUnreachable = 3001

	// CodeGatewayTransport 网关传输层异常
	// 适用场景：错误响应体无法验签/解密，只保留 HTTP 状态描述
	CodeGatewayTransport = 3002

	// CodeGatewayBusiness 网关业务拒绝
	// 适用场景：错误信封解码成功，携带网关错误码与描述，原样透传
	CodeGatewayBusiness = 3003

	// CodeGatewayInvalidResponse 网关响应协议违例
	// 适用场景：成功信封中缺少 redirect 链接等必要字段
	CodeGatewayInvalidResponse = 3004
)
