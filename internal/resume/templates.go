package resume

// DefaultTemplateID 是未识别模板时的兜底展示模板。
const DefaultTemplateID = "minimal"

var knownTemplates = map[string]struct{}{
	"minimal": {},
	"modern":  {},
	"classic": {},
}

// ResolveTemplateID 返回可用的模板 ID；未识别的值回退到默认模板。
// 模板 ID 不做枚举校验（入库原样保存），仅在渲染时解析。
func ResolveTemplateID(id string) string {
	if _, ok := knownTemplates[id]; ok {
		return id
	}
	return DefaultTemplateID
}
