package model

import "errors"

// MaterialCategory 物料分类
type MaterialCategory string

const (
	MaterialAPI        MaterialCategory = "API"
	MaterialExcipient  MaterialCategory = "Excipient"
	MaterialPackaging  MaterialCategory = "Packaging"
	MaterialConsumable MaterialCategory = "Consumable"
)

// InventoryItem 库存物料
type InventoryItem struct {
	Base
	Name             string           `json:"name"`
	Category         MaterialCategory `json:"category"`
	LotNumber        string           `json:"lotNumber"`
	Stock            float64          `json:"stock"`
	Unit             string           `json:"unit"`
	ReorderLevel     float64          `json:"reorderLevel"`
	ExpiryDate       string           `json:"expiryDate"`
	ManufacturerName string           `json:"manufacturerName"`
	StorageCondition string           `json:"storageCondition"`
}

// Validate 验证物料必填字段
func (i *InventoryItem) Validate() error {
	if i.Name == "" {
		return errors.New("name is required")
	}
	if i.LotNumber == "" {
		return errors.New("lot number is required")
	}
	return nil
}
