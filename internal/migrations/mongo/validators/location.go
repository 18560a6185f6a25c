package validators

import "go.mongodb.org/mongo-driver/bson"

var LocationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"city",
			"address",
			"phone",
			"active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"city": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"address": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},

			"phone": bson.M{
				"bsonType": "string",
				"pattern":  `^\+[1-9]\d{1,14}$`,
			},

			"labels": bson.M{
				"bsonType": "array",
				"maxItems": 10,
				"items": bson.M{
					"bsonType":  "string",
					"minLength": 1,
				},
			},

			"treatments": bson.M{
				"bsonType": "array",
				"maxItems": 100,
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"id", "name", "duration_min"},
					"properties": bson.M{
						"id": bson.M{
							"bsonType": "string",
						},
						"name": bson.M{
							"bsonType":  "string",
							"minLength": 2,
							"maxLength": 100,
						},
						"duration_min": bson.M{
							"bsonType": "int",
							"minimum":  5,
							"maximum":  480,
						},
						"price": bson.M{
							"bsonType": []string{"double", "int", "long"},
							"minimum":  0,
						},
						"active": bson.M{
							"bsonType": "bool",
						},
					},
				},
			},

			"active": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
