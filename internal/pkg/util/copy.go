package util

import (
	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// copyOption ObjectID 统一转成 hex 字符串
var copyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: primitive.ObjectID{},
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				return src.(primitive.ObjectID).Hex(), nil
			},
		},
		{
			SrcType: &primitive.ObjectID{},
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				id, _ := src.(*primitive.ObjectID)
				if id == nil {
					return "", nil
				}
				return id.Hex(), nil
			},
		},
	},
}

// Copy 模型到 DTO 的拷贝
func Copy(to, from any) error {
	return copier.CopyWithOption(to, from, copyOption)
}
