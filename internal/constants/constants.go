package constants

// 捐赠状态，仅允许 New -> Confirmed -> Done 前进
const (
	DonationStatusNew       = "New"
	DonationStatusConfirmed = "Confirmed"
	DonationStatusDone      = "Done"
)

// 文件存储容器
const (
	ContainerProofOfTransfer = "proof-of-transfer"
	ContainerCertificates    = "certificates"
)

// 通知类型
const (
	NotifyKindRegistration = "registration"
	NotifyKindApproval     = "approval"
)

// 设置项键名
const (
	SettingKeyDonation = "donation"
)

// 管理员角色
const (
	RoleOperator = "operator"
)

// 支持的语言
const (
	LocaleID = "id-ID"
	LocaleEN = "en-US"
)

// DonationStatuses 按生命周期顺序排列的全部状态
var DonationStatuses = []string{
	DonationStatusNew,
	DonationStatusConfirmed,
	DonationStatusDone,
}
