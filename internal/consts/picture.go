package consts

const (
	// MaxPictureURLLength 图片地址最大长度
	MaxPictureURLLength = 80
	// MaxIntroductionLength 图片简介最大长度
	MaxIntroductionLength = 8192
	// MaxReviewMessageLength 审核信息最大长度
	MaxReviewMessageLength = 2000
	// MaxPublicPageSize 面向普通用户的分页接口单页上限
	MaxPublicPageSize = 20

	DefaultPage     = 1
	DefaultPageSize = 10

	// AutoApproveMessage 管理员上传或编辑时写入的审核信息
	AutoApproveMessage = "管理员自动过审"

	// SortOrderAscend 升序标识，其余取值一律按降序处理
	SortOrderAscend = "ascend"

	// UploadPathPrefix 用户上传目录前缀，实际路径为 public/<userID>
	UploadPathPrefix = "public"
)

// PictureTags 预设标签
var PictureTags = []string{"热门", "搞笑", "生活", "情感", "学习", "科技", "游戏", "汽车", "美食", "旅游", "时尚"}

// PictureCategories 预设分类
var PictureCategories = []string{"模板", "电商", "表情包", "素材", "海报"}
