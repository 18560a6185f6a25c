package validators

import "go.mongodb.org/mongo-driver/bson"

var timeWindowSchema = bson.M{
	"bsonType": "object",
	"required": []string{"start", "end"},
	"properties": bson.M{
		"start": bson.M{
			"bsonType": "string",
			"pattern":  `^([01]\d|2[0-3]):[0-5]\d$`,
		},
		"end": bson.M{
			"bsonType": "string",
			"pattern":  `^([01]\d|2[0-3]):[0-5]\d$`,
		},
		"is_active": bson.M{
			"bsonType": "bool",
		},
	},
}

var dayHoursSchema = bson.M{
	"bsonType": "object",
	"required": []string{"enabled"},
	"properties": bson.M{
		"enabled": bson.M{
			"bsonType": "bool",
		},
		"windows": bson.M{
			"bsonType": "array",
			"maxItems": 10,
			"items":    timeWindowSchema,
		},
	},
}

var ScheduleValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"location_id",
			"weekly",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"location_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"weekly": bson.M{
				"bsonType": "object",
				"required": []string{
					"monday", "tuesday", "wednesday", "thursday",
					"friday", "saturday", "sunday",
				},
				"properties": bson.M{
					"monday":    dayHoursSchema,
					"tuesday":   dayHoursSchema,
					"wednesday": dayHoursSchema,
					"thursday":  dayHoursSchema,
					"friday":    dayHoursSchema,
					"saturday":  dayHoursSchema,
					"sunday":    dayHoursSchema,
				},
			},

			"overrides": bson.M{
				"bsonType": "array",
				"maxItems": 100,
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"start_date", "end_date"},
					"properties": bson.M{
						"id": bson.M{
							"bsonType": "string",
						},
						"start_date": bson.M{
							"bsonType": "string",
							"pattern":  `^\d{4}-\d{2}-\d{2}$`,
						},
						"end_date": bson.M{
							"bsonType": "string",
							"pattern":  `^\d{4}-\d{2}-\d{2}$`,
						},
						"closed": bson.M{
							"bsonType": "bool",
						},
						"windows": bson.M{
							"bsonType": "array",
							"maxItems": 10,
							"items":    timeWindowSchema,
						},
						"reason": bson.M{
							"bsonType":  "string",
							"maxLength": 200,
						},
					},
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
