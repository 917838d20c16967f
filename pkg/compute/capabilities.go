package compute

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// CapabilitiesXML 是 libvirt capabilities 的 XML 结构
// 只解析调度器需要的 host 部分
type CapabilitiesXML struct {
	XMLName xml.Name         `xml:"capabilities"`
	Host    CapabilitiesHost `xml:"host"`
}

// CapabilitiesHost 主机信息
type CapabilitiesHost struct {
	UUID string          `xml:"uuid"`
	CPU  CapabilitiesCPU `xml:"cpu"`
}

// CapabilitiesCPU 主机 CPU 信息
// Raw 保留 cpu 元素的原始内容，重新包上 <cpu> 标签后
// 可以直接作为 compareCPU 的输入
type CapabilitiesCPU struct {
	Raw    string `xml:",innerxml"`
	Arch   string `xml:"arch"`
	Model  string `xml:"model"`
	Vendor string `xml:"vendor"`
}

// ParseCapabilities 解析 capabilities XML
func ParseCapabilities(xmlData string) (*CapabilitiesXML, error) {
	var caps CapabilitiesXML
	if err := xml.Unmarshal([]byte(xmlData), &caps); err != nil {
		return nil, err
	}
	return &caps, nil
}

// HostCPUXML 返回主机 CPU 的独立 XML 描述
func (c *CapabilitiesXML) HostCPUXML() string {
	raw := strings.TrimSpace(c.Host.CPU.Raw)
	if raw == "" {
		return ""
	}
	return fmt.Sprintf("<cpu>%s</cpu>", raw)
}
