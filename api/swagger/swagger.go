package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Educational Attendance API",
        "description": "Face-verified attendance for students, teachers, classes and sessions",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {
            "name": "Authentication",
            "description": "Face-login flow and attendance marking"
        },
        {
            "name": "Students",
            "description": "Student records"
        },
        {
            "name": "Teachers",
            "description": "Teacher records"
        },
        {
            "name": "SubjectSets",
            "description": "Subject offerings per campus"
        },
        {
            "name": "Classes",
            "description": "Student enrollments with a teacher"
        },
        {
            "name": "Sessions",
            "description": "Scheduled class meetings"
        },
        {
            "name": "Attendance",
            "description": "Attendance records and exports"
        },
        {
            "name": "FaceData",
            "description": "Registered face images and descriptors"
        },
        {
            "name": "Health",
            "description": "Operational endpoints"
        }
    ],
    "paths": {
        "/students": {
            "get": {
                "tags": [
                    "Students"
                ],
                "summary": "List students",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Students"
                ],
                "summary": "Create student",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/StudentRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "413": {
                        "description": "Payload too large",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/students/{id}": {
            "get": {
                "tags": [
                    "Students"
                ],
                "summary": "Get student",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "id"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Students"
                ],
                "summary": "Replace student",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "id"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/StudentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            },
            "delete": {
                "tags": [
                    "Students"
                ],
                "summary": "Delete student",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "id"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/teachers": {
            "get": {
                "tags": [
                    "Teachers"
                ],
                "summary": "List teachers",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Teachers"
                ],
                "summary": "Create teacher",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/TeacherRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "413": {
                        "description": "Payload too large",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/teachers/{id}": {
            "get": {
                "tags": [
                    "Teachers"
                ],
                "summary": "Get teacher",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "id"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Teachers"
                ],
                "summary": "Replace teacher",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "id"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/TeacherRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            },
            "delete": {
                "tags": [
                    "Teachers"
                ],
                "summary": "Delete teacher",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "id"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/subject-sets": {
            "get": {
                "tags": [
                    "SubjectSets"
                ],
                "summary": "List subject sets",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "SubjectSets"
                ],
                "summary": "Create subject set",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SubjectSetRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "413": {
                        "description": "Payload too large",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/subject-sets/{id}": {
            "get": {
                "tags": [
                    "SubjectSets"
                ],
                "summary": "Get subject set",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "id"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/classes": {
            "get": {
                "tags": [
                    "Classes"
                ],
                "summary": "List classs",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Classes"
                ],
                "summary": "Create class",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ClassRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "413": {
                        "description": "Payload too large",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/classes/{id}": {
            "get": {
                "tags": [
                    "Classes"
                ],
                "summary": "Get class",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "id"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/sessions": {
            "get": {
                "tags": [
                    "Sessions"
                ],
                "summary": "List sessions",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Sessions"
                ],
                "summary": "Create session",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SessionRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "413": {
                        "description": "Payload too large",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/sessions/{id}": {
            "get": {
                "tags": [
                    "Sessions"
                ],
                "summary": "Get session",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "id"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Sessions"
                ],
                "summary": "Replace session",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "id"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SessionRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/attendance": {
            "get": {
                "tags": [
                    "Attendance"
                ],
                "summary": "List attendance records",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Attendance"
                ],
                "summary": "Record attendance",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/AttendanceRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/attendance/{id}": {
            "put": {
                "tags": [
                    "Attendance"
                ],
                "summary": "Update attendance record",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "id"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/AttendanceRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/attendance/session/{sessionId}": {
            "get": {
                "tags": [
                    "Attendance"
                ],
                "summary": "List attendance for a session",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "sessionId",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "sessionId"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/attendance/session/{sessionId}/export": {
            "get": {
                "tags": [
                    "Attendance"
                ],
                "summary": "Export a session's attendance roster",
                "produces": [
                    "text/csv",
                    "application/pdf"
                ],
                "parameters": [
                    {
                        "name": "sessionId",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "sessionId"
                    },
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "csv",
                            "pdf"
                        ],
                        "description": "defaults to csv"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Rendered document",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/face-data": {
            "post": {
                "tags": [
                    "FaceData"
                ],
                "summary": "Register face data",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/FaceDataRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "413": {
                        "description": "Payload too large",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/face-data/{personCode}": {
            "get": {
                "tags": [
                    "FaceData"
                ],
                "summary": "List face data for a person code",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "personCode",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "personCode"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/face-data/{id}": {
            "put": {
                "tags": [
                    "FaceData"
                ],
                "summary": "Replace face data",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "id"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/FaceDataRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            },
            "delete": {
                "tags": [
                    "FaceData"
                ],
                "summary": "Delete face data",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "id"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/auth/teachers": {
            "get": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Teacher roster for login selection",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/auth/verify-teacher-face": {
            "post": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Fetch a teacher's stored face descriptor",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/TeacherFaceRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/auth/teacher-classes/{teacherCode}": {
            "get": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Subject sets taught by a teacher",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "teacherCode",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "teacherCode"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/auth/class-students/{teacherCode}/{campus}/{subjectSetId}": {
            "get": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Students enrolled in a teacher's subject set",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "teacherCode",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "teacherCode"
                    },
                    {
                        "name": "campus",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "campus"
                    },
                    {
                        "name": "subjectSetId",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "subjectSetId"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/auth/verify-student-face": {
            "post": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Fetch a student's stored face descriptor",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/StudentFaceRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/auth/mark-attendance": {
            "post": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Mark or update attendance for a session",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/MarkAttendanceRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/": {
            "get": {
                "tags": [
                    "Health"
                ],
                "summary": "API banner",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/health": {
            "get": {
                "tags": [
                    "Health"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": [
                    "Health"
                ],
                "summary": "Readiness probe (pings PostgreSQL)",
                "responses": {
                    "200": {
                        "description": "Ready"
                    },
                    "503": {
                        "description": "Database unavailable",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": [
                    "Health"
                ],
                "summary": "Prometheus metrics",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        }
    },
    "definitions": {
        "Envelope": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "message": {
                    "type": "string"
                },
                "data": {
                    "type": "object"
                },
                "errors": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "error": {
                    "type": "string"
                }
            }
        },
        "StudentRequest": {
            "type": "object",
            "required": [
                "StudentCode",
                "StudentNickname",
                "StudentName",
                "EmailAddress",
                "Campus",
                "Form"
            ],
            "properties": {
                "StudentCode": {
                    "type": "string",
                    "maxLength": 10
                },
                "StudentNickname": {
                    "type": "string",
                    "maxLength": 50
                },
                "StudentName": {
                    "type": "string",
                    "maxLength": 100
                },
                "StudentImage": {
                    "type": "string",
                    "format": "byte"
                },
                "EmailAddress": {
                    "type": "string",
                    "format": "email",
                    "maxLength": 100
                },
                "Campus": {
                    "type": "string",
                    "maxLength": 20
                },
                "Form": {
                    "type": "string",
                    "maxLength": 20
                }
            }
        },
        "TeacherRequest": {
            "type": "object",
            "required": [
                "TeacherCode",
                "TeacherNickname",
                "TeacherName",
                "EmailAddress",
                "Campus",
                "Department"
            ],
            "properties": {
                "TeacherCode": {
                    "type": "string",
                    "maxLength": 10
                },
                "TeacherNickname": {
                    "type": "string",
                    "maxLength": 50
                },
                "TeacherName": {
                    "type": "string",
                    "maxLength": 100
                },
                "TeacherImage": {
                    "type": "string",
                    "format": "byte"
                },
                "EmailAddress": {
                    "type": "string",
                    "format": "email",
                    "maxLength": 100
                },
                "Campus": {
                    "type": "string",
                    "maxLength": 20
                },
                "Department": {
                    "type": "string",
                    "maxLength": 50
                }
            }
        },
        "SubjectSetRequest": {
            "type": "object",
            "required": [
                "Campus",
                "SubjectSetID",
                "Subject",
                "Credits"
            ],
            "properties": {
                "Campus": {
                    "type": "string",
                    "maxLength": 20
                },
                "SubjectSetID": {
                    "type": "string",
                    "maxLength": 20
                },
                "Subject": {
                    "type": "string",
                    "maxLength": 100
                },
                "SubjectSetDescription": {
                    "type": "string"
                },
                "Credits": {
                    "type": "integer",
                    "minimum": 0
                }
            }
        },
        "ClassRequest": {
            "type": "object",
            "required": [
                "Campus",
                "SubjectSetID",
                "TeacherCode",
                "StudentCode"
            ],
            "properties": {
                "Campus": {
                    "type": "string",
                    "maxLength": 20
                },
                "SubjectSetID": {
                    "type": "string",
                    "maxLength": 20
                },
                "TeacherCode": {
                    "type": "string",
                    "maxLength": 10
                },
                "StudentCode": {
                    "type": "string",
                    "maxLength": 10
                }
            }
        },
        "SessionRequest": {
            "type": "object",
            "required": [
                "SessionName",
                "SubjectSetID",
                "TeacherCode",
                "Campus",
                "SessionDate",
                "StartTime",
                "EndTime"
            ],
            "properties": {
                "SessionName": {
                    "type": "string",
                    "maxLength": 100
                },
                "SubjectSetID": {
                    "type": "string",
                    "maxLength": 20
                },
                "TeacherCode": {
                    "type": "string",
                    "maxLength": 10
                },
                "Campus": {
                    "type": "string",
                    "maxLength": 20
                },
                "SessionDate": {
                    "type": "string",
                    "format": "date"
                },
                "StartTime": {
                    "type": "string",
                    "example": "09:00"
                },
                "EndTime": {
                    "type": "string",
                    "example": "10:30"
                }
            }
        },
        "AttendanceRequest": {
            "type": "object",
            "required": [
                "SessionId",
                "StudentCode",
                "Status",
                "AttendanceDate"
            ],
            "properties": {
                "SessionId": {
                    "type": "integer"
                },
                "StudentCode": {
                    "type": "string",
                    "maxLength": 10
                },
                "Status": {
                    "type": "string",
                    "enum": [
                        "Present",
                        "Absent",
                        "Late"
                    ]
                },
                "AttendanceDate": {
                    "type": "string",
                    "format": "date"
                }
            }
        },
        "FaceDataRequest": {
            "type": "object",
            "required": [
                "PersonType",
                "PersonCode",
                "ImageData"
            ],
            "properties": {
                "PersonType": {
                    "type": "string",
                    "enum": [
                        "Student",
                        "Teacher"
                    ]
                },
                "PersonCode": {
                    "type": "string",
                    "maxLength": 10
                },
                "ImageData": {
                    "type": "string",
                    "format": "byte"
                },
                "FaceDescriptor": {
                    "type": "string",
                    "description": "JSON text"
                },
                "OriginalName": {
                    "type": "string",
                    "maxLength": 255
                },
                "ContentType": {
                    "type": "string",
                    "maxLength": 100,
                    "default": "image/jpeg"
                }
            }
        },
        "TeacherFaceRequest": {
            "type": "object",
            "required": [
                "TeacherCode",
                "FaceDescriptor"
            ],
            "properties": {
                "TeacherCode": {
                    "type": "string"
                },
                "FaceDescriptor": {
                    "type": "object"
                }
            }
        },
        "StudentFaceRequest": {
            "type": "object",
            "required": [
                "StudentCode",
                "FaceDescriptor"
            ],
            "properties": {
                "StudentCode": {
                    "type": "string"
                },
                "FaceDescriptor": {
                    "type": "object"
                },
                "SessionId": {
                    "type": "integer"
                }
            }
        },
        "MarkAttendanceRequest": {
            "type": "object",
            "required": [
                "SessionId",
                "StudentCode"
            ],
            "properties": {
                "SessionId": {
                    "type": "integer"
                },
                "StudentCode": {
                    "type": "string"
                },
                "Status": {
                    "type": "string",
                    "enum": [
                        "Present",
                        "Absent",
                        "Late"
                    ],
                    "default": "Present"
                },
                "AttendanceDate": {
                    "type": "string",
                    "format": "date"
                }
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
